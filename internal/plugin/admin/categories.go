package admin

import (
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/event"
	"github.com/sidereusnuntius/gopress/internal/plugin"
	"github.com/sidereusnuntius/gopress/internal/utils"
)

const categoriesOwner = "edit-blog-categories"

const (
	PageCategories = "admin-edit-blog-categories"
	PageCategory   = "admin-edit-blog-category"
)

const (
	paramCategoryParentID    = "blog-category-parent-id"
	paramCategoryName        = "blog-category-name"
	paramCategoryDescription = "blog-category-description"
	paramCategoryMetadata    = "blog-category-meta-data"
)

var (
	CategoriesKey       = plugin.NewKey[[]domain.Category](categoriesOwner, "categories")
	CategoryKey         = plugin.NewKey[domain.Category](categoriesOwner, "category")
	CategoryMetadataKey = plugin.NewKey[string](categoriesOwner, "metadata")
)

type CategoryAction uint8

const (
	CategoryActionUnknown CategoryAction = iota
	CategoryActionNone
	CategoryActionPage
	CategoryActionAdd
	CategoryActionUpdate
	CategoryActionDelete
	CategoryActionEdit
)

func ParseCategoryAction(s string) CategoryAction {
	switch s {
	case "":
		return CategoryActionNone
	case actionPage:
		return CategoryActionPage
	case "add-blog-category":
		return CategoryActionAdd
	case "update-blog-category":
		return CategoryActionUpdate
	case "delete-blog-category":
		return CategoryActionDelete
	case "edit-blog-category":
		return CategoryActionEdit
	}
	return CategoryActionUnknown
}

// Categories adds, edits and deletes the categories of a blog. Every request leaves the current category list
// in the context.
type Categories struct {
	Base
}

func NewCategories() plugin.Plugin {
	return &Categories{}
}

func (p *Categories) Process(pc *plugin.Context, entries []*domain.Entry) ([]*domain.Entry, error) {
	if !p.Authenticate(pc) {
		pc.SetPage(p.Name, PageLogin)
		return entries, nil
	}
	a := ParseCategoryAction(pc.Param(paramAction))
	switch {
	case a == CategoryActionUnknown, a == CategoryActionNone:
		return entries, nil
	case a == CategoryActionPage && !pageRequested(pc, PageCategories):
		return entries, nil
	}
	if !p.Permit(pc, domain.PermissionEditCategories, failedPermissionText) {
		return entries, nil
	}

	switch a {
	case CategoryActionPage:
		pc.SetPage(p.Name, PageCategories)
	case CategoryActionAdd, CategoryActionUpdate:
		p.save(pc, a == CategoryActionAdd)
	case CategoryActionDelete:
		p.delete(pc)
	case CategoryActionEdit:
		p.edit(pc)
	case CategoryActionUnknown, CategoryActionNone:
	}

	p.list(pc)
	return entries, nil
}

func (p *Categories) list(pc *plugin.Context) {
	categories, err := p.Service.Categories(pc.Ctx(), pc.Blog.ID)
	if err != nil {
		log.Error().Err(err).Str("blog", pc.Blog.ID).Msg("failed to list categories")
		categories = []domain.Category{}
	}
	plugin.Set(pc, CategoriesKey, categories)
}

// find loads the category named by the id parameter, falling back to the name parameter.
func (p *Categories) find(pc *plugin.Context) (domain.Category, string, error) {
	if raw := pc.Param(paramCategoryID); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			return domain.Category{}, raw, strconv.ErrSyntax
		}
		c, err := p.Service.Category(pc.Ctx(), pc.Blog.ID, id)
		return c, raw, err
	}
	name := pc.Param(paramCategoryName)
	c, err := p.Service.CategoryByName(pc.Ctx(), pc.Blog.ID, name)
	return c, name, err
}

func (p *Categories) edit(pc *plugin.Context) {
	pc.SetPage(p.Name, PageCategories)
	c, ref, err := p.find(pc)
	if err != nil {
		log.Debug().Err(err).Str("blog", pc.Blog.ID).Str("category", ref).Msg("failed to load category")
		pc.AddMessage(text(failedLoadCategoryText, ref))
		return
	}
	plugin.Set(pc, CategoryKey, c)
	plugin.Set(pc, CategoryMetadataKey, FormatMetadata(c.Metadata))
	pc.SetPage(p.Name, PageCategory)
}

func (p *Categories) save(pc *plugin.Context, add bool) {
	pc.SetPage(p.Name, PageCategories)
	name := pc.Param(paramCategoryName)

	var c domain.Category
	if add {
		if name == "" {
			pc.AddMessage(text(noCategoryText))
			return
		}
		c = domain.Category{BlogID: pc.Blog.ID}
	} else {
		raw := pc.Param(paramCategoryID)
		id, ok := parseID(raw)
		if !ok {
			pc.AddMessage(text(failedLoadCategoryText, raw))
			return
		}
		var err error
		if c, err = p.Service.Category(pc.Ctx(), pc.Blog.ID, id); err != nil {
			pc.AddMessage(text(failedLoadCategoryText, raw))
			return
		}
	}

	if name != "" {
		c.Name = name
	}
	c.Description = pc.Param(paramCategoryDescription)
	c.ParentID = nil
	if parent, ok := parseID(pc.Param(paramCategoryParentID)); ok {
		c.ParentID = &parent
	}
	c.Metadata = domain.Metadata(utils.ParseKeyValues(pc.Request.FormValue(paramCategoryMetadata)))

	if err := p.Service.SaveCategory(pc.Ctx(), &c); err != nil {
		log.Error().Err(err).Str("blog", pc.Blog.ID).Str("category", c.Name).Msg("failed to save category")
		pc.AddMessage(text(categoryChangeFailedText, c.Name))
		return
	}

	ev := p.newEvent(pc, event.CategoryUpdated)
	if add {
		ev.Type = event.CategoryAdded
		pc.AddMessage(text(categoryAddedText, c.Name))
	} else {
		pc.AddMessage(text(categoryUpdatedText, c.Name))
	}
	ev.Category = &c
	p.Broadcast(pc, ev)
}

func (p *Categories) delete(pc *plugin.Context) {
	pc.SetPage(p.Name, PageCategories)
	c, ref, err := p.find(pc)
	if err != nil {
		pc.AddMessage(text(failedDeleteCategoryText, ref))
		return
	}
	if err = p.Service.DeleteCategory(pc.Ctx(), pc.Blog.ID, c.ID); err != nil {
		log.Error().Err(err).Str("blog", pc.Blog.ID).Int64("category", c.ID).Msg("failed to delete category")
		pc.AddMessage(text(failedDeleteCategoryText, c.Name))
		return
	}
	pc.AddMessage(text(deletedCategoryText, c.Name))
	ev := p.newEvent(pc, event.CategoryDeleted)
	ev.Category = &c
	p.Broadcast(pc, ev)
}

// FormatMetadata renders metadata as the key=value lines the edit form submits, sorted by key.
func FormatMetadata(m domain.Metadata) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(m[k])
		b.WriteString("\r\n")
	}
	return b.String()
}

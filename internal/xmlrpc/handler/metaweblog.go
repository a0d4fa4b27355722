package handler

import (
	"context"
	"path"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/db"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/event"
	"github.com/sidereusnuntius/gopress/internal/xmlrpc"
)

// Struct members of the MetaWeblog API.
const (
	memberBlogID      = "blogid"
	memberBlogName    = "blogName"
	memberDescription = "description"
	memberHTMLURL     = "htmlUrl"
	memberRSSURL      = "rssUrl"
	memberTitle       = "title"
	memberLink        = "link"
	memberName        = "name"
	memberType        = "type"
	memberBits        = "bits"
	memberPermalink   = "permaLink"
	memberDateCreated = "dateCreated"
	memberCategories  = "categories"
	memberPostID      = "postid"
	memberURL         = "url"
)

func (a *API) registerMetaWeblog(srv *xmlrpc.Server) {
	srv.Register("metaWeblog.getUsersBlogs", a.getUsersBlogs)
	srv.Register("metaWeblog.getCategories", a.getCategories)
	srv.Register("metaWeblog.newPost", a.newPost)
	srv.Register("metaWeblog.editPost", a.editPost)
	srv.Register("metaWeblog.getPost", a.getPost)
	srv.Register("metaWeblog.deletePost", a.deletePost)
	srv.Register("metaWeblog.getRecentPosts", a.getRecentPosts)
	srv.Register("metaWeblog.newMediaObject", a.newMediaObject)
	srv.Register("metaWeblog.setTemplate", unsupported)
	srv.Register("metaWeblog.getTemplate", unsupported)
}

func unsupported(context.Context, *xmlrpc.Call) (any, error) {
	return nil, xmlrpc.ErrUnsupported
}

// credentials reads the login and password found at positions i and i+1.
func credentials(p xmlrpc.Params, i int) (login, password string, err error) {
	if login, err = p.String(i); err != nil {
		return
	}
	password, err = p.String(i + 1)
	return
}

// postStruct describes an entry the way MetaWeblog clients expect it.
func postStruct(blog *domain.Blog, e domain.Entry) xmlrpc.Struct {
	link := blog.EntryURL(e.Slug).String()
	return xmlrpc.Struct{
		memberTitle:       e.Title,
		memberLink:        link,
		memberDescription: e.Description,
		memberDateCreated: e.Created,
		memberPermalink:   link,
		memberPostID:      strconv.FormatInt(e.ID, 10),
		memberCategories:  []string{strconv.FormatInt(e.CategoryID, 10)},
	}
}

// getUsersBlogs(appkey, login, password) lists the categories of the blog as the blogs a client may post to.
func (a *API) getUsersBlogs(ctx context.Context, c *xmlrpc.Call) (any, error) {
	return a.usersBlogs(ctx, c, domain.PermissionMetaWeblogAPI)
}

func (a *API) usersBlogs(ctx context.Context, c *xmlrpc.Call, permission string) (any, error) {
	login, password, err := credentials(c.Params, 1)
	if err != nil {
		return nil, err
	}
	if err := a.authorize(ctx, c, login, password, permission); err != nil {
		return nil, err
	}
	cs, err := a.categories(ctx, c.Blog)
	if err != nil {
		return nil, err
	}
	result := make([]xmlrpc.Struct, 0, len(cs))
	for _, cat := range cs {
		result = append(result, xmlrpc.Struct{
			memberURL:      categoryURL(c.Blog, cat),
			memberBlogID:   strconv.FormatInt(cat.ID, 10),
			memberBlogName: cat.DisplayName(),
		})
	}
	return result, nil
}

// getCategories(blogid, login, password) maps each category id to its description and urls.
func (a *API) getCategories(ctx context.Context, c *xmlrpc.Call) (any, error) {
	login, password, err := credentials(c.Params, 1)
	if err != nil {
		return nil, err
	}
	if err := a.authorize(ctx, c, login, password, domain.PermissionMetaWeblogAPI); err != nil {
		return nil, err
	}
	cs, err := a.categories(ctx, c.Blog)
	if err != nil {
		return nil, err
	}
	result := make(xmlrpc.Struct, len(cs))
	for _, cat := range cs {
		u := categoryURL(c.Blog, cat)
		result[strconv.FormatInt(cat.ID, 10)] = xmlrpc.Struct{
			memberDescription: cat.DisplayName(),
			memberHTMLURL:     u,
			memberRSSURL:      u + "?flavor=rss2",
		}
	}
	return result, nil
}

// newPost(blogid, login, password, struct, publish) stores a new entry in the category named by blogid, or by
// the first of the struct's categories, and answers with the entry id.
func (a *API) newPost(ctx context.Context, c *xmlrpc.Call) (any, error) {
	blogID, err := c.Params.String(0)
	if err != nil {
		return nil, err
	}
	login, password, err := credentials(c.Params, 1)
	if err != nil {
		return nil, err
	}
	post, err := c.Params.Struct(3)
	if err != nil {
		return nil, err
	}
	publish, err := c.Params.Bool(4)
	if err != nil {
		return nil, err
	}
	if cats := xmlrpc.MemberStrings(post, memberCategories); len(cats) > 0 {
		blogID = cats[0]
	}

	if err := a.authorize(ctx, c, login, password, domain.PermissionMetaWeblogAPI); err != nil {
		return nil, err
	}
	cat, err := a.category(ctx, c.Blog, blogID)
	if err != nil {
		return nil, err
	}

	e := &domain.Entry{
		BlogID:          c.Blog.ID,
		CategoryID:      cat.ID,
		Title:           xmlrpc.MemberString(post, memberTitle),
		Description:     xmlrpc.MemberString(post, memberDescription),
		Author:          login,
		Status:          status(publish),
		AllowComments:   true,
		AllowTrackbacks: true,
		AllowPingbacks:  true,
	}
	if created, ok := xmlrpc.MemberTime(post, memberDateCreated); ok {
		e.Created = created
	} else {
		e.Created = a.now()
	}
	e.Modified = e.Created

	if err := a.save(ctx, c.Blog, e); err != nil {
		return nil, err
	}
	log.Info().Str("blog", c.Blog.ID).Int64("entry", e.ID).Str("user", login).Msg("entry added through XML-RPC")
	a.broadcast(ctx, c, event.EntryAdded, e)
	return strconv.FormatInt(e.ID, 10), nil
}

// editPost(postid, login, password, struct, publish) replaces the title and body of an entry.
func (a *API) editPost(ctx context.Context, c *xmlrpc.Call) (any, error) {
	raw, err := c.Params.String(0)
	if err != nil {
		return nil, err
	}
	login, password, err := credentials(c.Params, 1)
	if err != nil {
		return nil, err
	}
	post, err := c.Params.Struct(3)
	if err != nil {
		return nil, err
	}
	publish, err := c.Params.Bool(4)
	if err != nil {
		return nil, err
	}

	if err := a.authorize(ctx, c, login, password, domain.PermissionMetaWeblogAPI); err != nil {
		return nil, err
	}
	id, err := postID(raw)
	if err != nil {
		return nil, err
	}
	e, err := a.loadEntry(ctx, c.Blog, id, xmlrpc.ErrUnknown)
	if err != nil {
		return nil, err
	}

	e.Title = xmlrpc.MemberString(post, memberTitle)
	e.Description = xmlrpc.MemberString(post, memberDescription)
	if created, ok := xmlrpc.MemberTime(post, memberDateCreated); ok {
		e.Created = created
		e.Modified = created
	} else {
		e.Modified = a.now()
	}
	e.Status = status(publish)
	if cats := xmlrpc.MemberStrings(post, memberCategories); len(cats) > 0 {
		cat, err := a.category(ctx, c.Blog, cats[0])
		if err != nil {
			return nil, err
		}
		e.CategoryID = cat.ID
	}

	if err := a.save(ctx, c.Blog, &e); err != nil {
		return nil, err
	}
	log.Info().Str("blog", c.Blog.ID).Int64("entry", e.ID).Str("user", login).Msg("entry updated through XML-RPC")
	a.broadcast(ctx, c, event.EntryUpdated, &e)
	return true, nil
}

// getPost(postid, login, password)
func (a *API) getPost(ctx context.Context, c *xmlrpc.Call) (any, error) {
	raw, err := c.Params.String(0)
	if err != nil {
		return nil, err
	}
	login, password, err := credentials(c.Params, 1)
	if err != nil {
		return nil, err
	}
	if err := a.authorize(ctx, c, login, password, domain.PermissionMetaWeblogAPI); err != nil {
		return nil, err
	}
	id, err := postID(raw)
	if err != nil {
		return nil, err
	}
	e, err := a.loadEntry(ctx, c.Blog, id, xmlrpc.ErrInvalidPostID)
	if err != nil {
		return nil, err
	}
	return postStruct(c.Blog, e), nil
}

// deletePost(appkey, postid, login, password, publish) is shared by the Blogger and MetaWeblog APIs.
func (a *API) deletePost(ctx context.Context, c *xmlrpc.Call) (any, error) {
	return a.remove(ctx, c, domain.PermissionMetaWeblogAPI)
}

func (a *API) remove(ctx context.Context, c *xmlrpc.Call, permission string) (any, error) {
	raw, err := c.Params.String(1)
	if err != nil {
		return nil, err
	}
	login, password, err := credentials(c.Params, 2)
	if err != nil {
		return nil, err
	}
	if err := a.authorize(ctx, c, login, password, permission); err != nil {
		return nil, err
	}
	id, err := postID(raw)
	if err != nil {
		return nil, err
	}
	e, err := a.loadEntry(ctx, c.Blog, id, xmlrpc.ErrUnknown)
	if err != nil {
		return nil, err
	}
	if err := a.service.DeleteEntry(ctx, c.Blog.ID, id); err != nil {
		log.Error().Err(err).Str("blog", c.Blog.ID).Int64("entry", id).Msg("failed to delete entry from XML-RPC")
		return nil, xmlrpc.ErrUnknown
	}
	log.Info().Str("blog", c.Blog.ID).Int64("entry", id).Str("user", login).Msg("entry deleted through XML-RPC")
	a.broadcast(ctx, c, event.EntryDeleted, &e)
	return true, nil
}

// recent lists the newest entries of a category. The blog's own id, or an empty one, lists every category.
func (a *API) recent(ctx context.Context, blog *domain.Blog, blogID string, n int) ([]domain.Entry, error) {
	if n <= 0 || n > recentLimit {
		n = recentLimit
	}
	q := db.EntryQuery{Page: 1, PageSize: n}
	blogID = strings.Trim(strings.TrimSpace(blogID), "/")
	if blogID != "" && blogID != blog.ID {
		id, err := strconv.ParseInt(blogID, 10, 64)
		if err != nil {
			return nil, xmlrpc.ErrUnknown
		}
		q.CategoryID = id
	}
	entries, err := a.service.Entries(ctx, blog.ID, q)
	if err != nil {
		log.Error().Err(err).Str("blog", blog.ID).Msg("failed to list entries for XML-RPC")
		return nil, xmlrpc.ErrUnknown
	}
	return entries, nil
}

// getRecentPosts(blogid, login, password, count)
func (a *API) getRecentPosts(ctx context.Context, c *xmlrpc.Call) (any, error) {
	blogID, err := c.Params.String(0)
	if err != nil {
		return nil, err
	}
	login, password, err := credentials(c.Params, 1)
	if err != nil {
		return nil, err
	}
	n, err := c.Params.Int(3)
	if err != nil {
		return nil, err
	}
	if err := a.authorize(ctx, c, login, password, domain.PermissionMetaWeblogAPI); err != nil {
		return nil, err
	}
	entries, err := a.recent(ctx, c.Blog, blogID, n)
	if err != nil {
		return nil, err
	}
	result := make([]xmlrpc.Struct, 0, len(entries))
	for _, e := range entries {
		result = append(result, postStruct(c.Blog, e))
	}
	return result, nil
}

// newMediaObject(blogid, login, password, struct{name, type, bits}) stores an upload and answers with its url.
func (a *API) newMediaObject(ctx context.Context, c *xmlrpc.Call) (any, error) {
	login, password, err := credentials(c.Params, 1)
	if err != nil {
		return nil, err
	}
	media, err := c.Params.Struct(3)
	if err != nil {
		return nil, err
	}
	if err := a.authorize(ctx, c, login, password, domain.PermissionMetaWeblogAPI); err != nil {
		return nil, err
	}

	m := domain.MediaObject{
		BlogID:   c.Blog.ID,
		Name:     path.Base(strings.ReplaceAll(xmlrpc.MemberString(media, memberName), "\\", "/")),
		MimeType: xmlrpc.MemberString(media, memberType),
		Bits:     xmlrpc.MemberBytes(media, memberBits),
	}
	u, err := a.service.SaveMedia(ctx, c.Blog, m, login)
	if err != nil {
		log.Error().Err(err).Str("blog", c.Blog.ID).Str("name", m.Name).Str("type", m.MimeType).Msg("failed to store media object")
		return nil, fault(err)
	}
	return xmlrpc.Struct{memberURL: u.String()}, nil
}

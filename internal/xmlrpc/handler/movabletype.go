package handler

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/xmlrpc"
)

// Struct members of the MovableType API.
const (
	memberCategoryID   = "categoryId"
	memberCategoryName = "categoryName"
	memberIsPrimary    = "isPrimary"
	memberPingTitle    = "pingTitle"
	memberPingURL      = "pingURL"
	memberPingIP       = "pingIP"
)

// supportedMethods is what mt.supportedMethods advertises: the methods with a working implementation.
var supportedMethods = []string{
	"blogger.newPost",
	"blogger.editPost",
	"blogger.getPost",
	"blogger.deletePost",
	"blogger.getRecentPosts",
	"blogger.getUsersBlogs",
	"blogger.getUserInfo",
	"metaWeblog.getUsersBlogs",
	"metaWeblog.getCategories",
	"metaWeblog.newPost",
	"metaWeblog.editPost",
	"metaWeblog.getPost",
	"metaWeblog.deletePost",
	"metaWeblog.getRecentPosts",
	"metaWeblog.newMediaObject",
	"mt.getRecentPostTitles",
	"mt.getCategoryList",
	"mt.getPostCategories",
	"mt.supportedMethods",
	"mt.supportedTextFilters",
	"mt.getTrackbackPings",
}

func (a *API) registerMovableType(srv *xmlrpc.Server) {
	srv.Register("mt.getRecentPostTitles", a.getRecentPostTitles)
	srv.Register("mt.getCategoryList", a.getCategoryList)
	srv.Register("mt.getPostCategories", a.getPostCategories)
	srv.Register("mt.setPostCategories", unsupported)
	srv.Register("mt.supportedMethods", func(context.Context, *xmlrpc.Call) (any, error) {
		return supportedMethods, nil
	})
	srv.Register("mt.supportedTextFilters", func(context.Context, *xmlrpc.Call) (any, error) {
		return xmlrpc.Array{}, nil
	})
	srv.Register("mt.getTrackbackPings", a.getTrackbackPings)
	srv.Register("mt.publishPost", unsupported)
}

// mt.getRecentPostTitles(blogid, login, password, count)
func (a *API) getRecentPostTitles(ctx context.Context, c *xmlrpc.Call) (any, error) {
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
	if err := a.authorize(ctx, c, login, password, domain.PermissionMovableTypeAPI); err != nil {
		return nil, err
	}
	entries, err := a.recent(ctx, c.Blog, blogID, n)
	if err != nil {
		return nil, err
	}
	result := make([]xmlrpc.Struct, 0, len(entries))
	for _, e := range entries {
		result = append(result, xmlrpc.Struct{
			memberTitle:       e.Title,
			memberUserID:      e.Author,
			memberDateCreated: e.Created,
			memberPostID:      strconv.FormatInt(e.ID, 10),
		})
	}
	return result, nil
}

// mt.getCategoryList(blogid, login, password)
func (a *API) getCategoryList(ctx context.Context, c *xmlrpc.Call) (any, error) {
	login, password, err := credentials(c.Params, 1)
	if err != nil {
		return nil, err
	}
	if err := a.authorize(ctx, c, login, password, domain.PermissionMovableTypeAPI); err != nil {
		return nil, err
	}
	cs, err := a.categories(ctx, c.Blog)
	if err != nil {
		return nil, err
	}
	result := make([]xmlrpc.Struct, 0, len(cs))
	for _, cat := range cs {
		result = append(result, xmlrpc.Struct{
			memberCategoryID:   strconv.FormatInt(cat.ID, 10),
			memberCategoryName: cat.DisplayName(),
		})
	}
	return result, nil
}

// mt.getPostCategories(postid, login, password) answers with the entry's single, primary category.
func (a *API) getPostCategories(ctx context.Context, c *xmlrpc.Call) (any, error) {
	raw, err := c.Params.String(0)
	if err != nil {
		return nil, err
	}
	login, password, err := credentials(c.Params, 1)
	if err != nil {
		return nil, err
	}
	if err := a.authorize(ctx, c, login, password, domain.PermissionMovableTypeAPI); err != nil {
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

	name := e.Category
	if cat, err := a.service.Category(ctx, c.Blog.ID, e.CategoryID); err == nil {
		name = cat.DisplayName()
	} else {
		log.Debug().Err(err).Str("blog", c.Blog.ID).Int64("category", e.CategoryID).Msg("using the entry's category name")
	}
	return []xmlrpc.Struct{{
		memberCategoryID:   strconv.FormatInt(e.CategoryID, 10),
		memberCategoryName: name,
		memberIsPrimary:    true,
	}}, nil
}

// mt.getTrackbackPings(postid) is public: it lists what the entry page shows anyway.
func (a *API) getTrackbackPings(ctx context.Context, c *xmlrpc.Call) (any, error) {
	raw, err := c.Params.String(0)
	if err != nil {
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
	result := make([]xmlrpc.Struct, 0, len(e.Trackbacks))
	for _, tb := range e.Trackbacks {
		result = append(result, xmlrpc.Struct{
			memberPingTitle: tb.Title,
			memberPingURL:   tb.URL,
			memberPingIP:    tb.Metadata[domain.MetadataIP],
		})
	}
	return result, nil
}

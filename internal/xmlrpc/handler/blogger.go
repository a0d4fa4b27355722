package handler

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/domain"
	"github.com/sidereusnuntius/gopress/internal/event"
	"github.com/sidereusnuntius/gopress/internal/xmlrpc"
)

// Struct members of the Blogger API.
const (
	memberContent   = "content"
	memberUserID    = "userid"
	memberNickname  = "nickname"
	memberEmail     = "email"
	memberFirstName = "firstname"
	memberLastName  = "lastname"
)

var titleTag = regexp.MustCompile(`(?is)^\s*<title>(.*?)</title>`)

func (a *API) registerBlogger(srv *xmlrpc.Server) {
	srv.Register("blogger.newPost", a.bloggerNewPost)
	srv.Register("blogger.editPost", a.bloggerEditPost)
	srv.Register("blogger.getPost", a.bloggerGetPost)
	srv.Register("blogger.deletePost", func(ctx context.Context, c *xmlrpc.Call) (any, error) {
		return a.remove(ctx, c, domain.PermissionBloggerAPI)
	})
	srv.Register("blogger.getRecentPosts", a.bloggerGetRecentPosts)
	srv.Register("blogger.getUsersBlogs", func(ctx context.Context, c *xmlrpc.Call) (any, error) {
		return a.usersBlogs(ctx, c, domain.PermissionBloggerAPI)
	})
	srv.Register("blogger.getUserInfo", a.getUserInfo)
	srv.Register("blogger.setTemplate", unsupported)
	srv.Register("blogger.getTemplate", unsupported)
}

// splitContent reads a Blogger post body. The title is a leading <title> element or else the first of several
// lines; a single line is all body.
func splitContent(content string) (title, description string) {
	if m := titleTag.FindStringSubmatchIndex(content); m != nil {
		return strings.TrimSpace(content[m[2]:m[3]]), strings.TrimSpace(content[m[1]:])
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if first, rest, ok := strings.Cut(content, "\n"); ok {
		return strings.TrimSpace(first), strings.TrimSpace(rest)
	}
	return "", strings.TrimSpace(content)
}

func joinContent(e domain.Entry) string {
	return e.Title + "\n" + e.Description
}

func bloggerStruct(e domain.Entry) xmlrpc.Struct {
	return xmlrpc.Struct{
		memberPostID:      strconv.FormatInt(e.ID, 10),
		memberUserID:      e.Author,
		memberDateCreated: e.Created,
		memberContent:     joinContent(e),
	}
}

// blogger.newPost(appkey, blogid, login, password, content, publish)
func (a *API) bloggerNewPost(ctx context.Context, c *xmlrpc.Call) (any, error) {
	blogID, err := c.Params.String(1)
	if err != nil {
		return nil, err
	}
	login, password, err := credentials(c.Params, 2)
	if err != nil {
		return nil, err
	}
	content, err := c.Params.String(4)
	if err != nil {
		return nil, err
	}
	publish, err := c.Params.Bool(5)
	if err != nil {
		return nil, err
	}
	if err := a.authorize(ctx, c, login, password, domain.PermissionBloggerAPI); err != nil {
		return nil, err
	}
	cat, err := a.category(ctx, c.Blog, blogID)
	if err != nil {
		return nil, err
	}

	e := &domain.Entry{
		BlogID:          c.Blog.ID,
		CategoryID:      cat.ID,
		Author:          login,
		Status:          status(publish),
		Created:         a.now(),
		AllowComments:   true,
		AllowTrackbacks: true,
		AllowPingbacks:  true,
	}
	e.Modified = e.Created
	e.Title, e.Description = splitContent(content)
	if err := a.save(ctx, c.Blog, e); err != nil {
		return nil, err
	}
	log.Info().Str("blog", c.Blog.ID).Int64("entry", e.ID).Str("user", login).Msg("entry added through Blogger API")
	a.broadcast(ctx, c, event.EntryAdded, e)
	return strconv.FormatInt(e.ID, 10), nil
}

// blogger.editPost(appkey, postid, login, password, content, publish)
func (a *API) bloggerEditPost(ctx context.Context, c *xmlrpc.Call) (any, error) {
	raw, err := c.Params.String(1)
	if err != nil {
		return nil, err
	}
	login, password, err := credentials(c.Params, 2)
	if err != nil {
		return nil, err
	}
	content, err := c.Params.String(4)
	if err != nil {
		return nil, err
	}
	publish, err := c.Params.Bool(5)
	if err != nil {
		return nil, err
	}
	if err := a.authorize(ctx, c, login, password, domain.PermissionBloggerAPI); err != nil {
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

	e.Title, e.Description = splitContent(content)
	e.Status = status(publish)
	e.Modified = a.now()
	if err := a.save(ctx, c.Blog, &e); err != nil {
		return nil, err
	}
	log.Info().Str("blog", c.Blog.ID).Int64("entry", e.ID).Str("user", login).Msg("entry updated through Blogger API")
	a.broadcast(ctx, c, event.EntryUpdated, &e)
	return true, nil
}

// blogger.getPost(appkey, postid, login, password)
func (a *API) bloggerGetPost(ctx context.Context, c *xmlrpc.Call) (any, error) {
	raw, err := c.Params.String(1)
	if err != nil {
		return nil, err
	}
	login, password, err := credentials(c.Params, 2)
	if err != nil {
		return nil, err
	}
	if err := a.authorize(ctx, c, login, password, domain.PermissionBloggerAPI); err != nil {
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
	return bloggerStruct(e), nil
}

// blogger.getRecentPosts(appkey, blogid, login, password, count)
func (a *API) bloggerGetRecentPosts(ctx context.Context, c *xmlrpc.Call) (any, error) {
	blogID, err := c.Params.String(1)
	if err != nil {
		return nil, err
	}
	login, password, err := credentials(c.Params, 2)
	if err != nil {
		return nil, err
	}
	n, err := c.Params.Int(4)
	if err != nil {
		return nil, err
	}
	if err := a.authorize(ctx, c, login, password, domain.PermissionBloggerAPI); err != nil {
		return nil, err
	}
	entries, err := a.recent(ctx, c.Blog, blogID, n)
	if err != nil {
		return nil, err
	}
	result := make([]xmlrpc.Struct, 0, len(entries))
	for _, e := range entries {
		result = append(result, bloggerStruct(e))
	}
	return result, nil
}

// blogger.getUserInfo(appkey, login, password) needs valid credentials only.
func (a *API) getUserInfo(ctx context.Context, c *xmlrpc.Call) (any, error) {
	login, password, err := credentials(c.Params, 1)
	if err != nil {
		return nil, err
	}
	u, err := a.user(ctx, c, login, password)
	if err != nil {
		return nil, err
	}
	first, last, _ := strings.Cut(strings.TrimSpace(u.Name), " ")
	return xmlrpc.Struct{
		memberUserID:    u.Login,
		memberNickname:  u.Login,
		memberEmail:     u.Email,
		memberURL:       c.Blog.URL.String(),
		memberFirstName: first,
		memberLastName:  last,
	}, nil
}

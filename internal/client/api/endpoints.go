package api

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"blogsphere/internal/client/session"
	"blogsphere/internal/envelope"
)

func pageQuery(page, limit int) string {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *Client) Signup(ctx context.Context, email, password, userName string) (session.User, error) {
	res, err := Into[session.User](c.Post(ctx, "/users/signup", map[string]string{
		"email":    email,
		"password": password,
		"userName": userName,
	}))
	return res.Data, err
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	res, err := Into[LoginResult](c.Post(ctx, "/users/login", map[string]string{
		"email":    email,
		"password": password,
	}))
	return res.Data, err
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.Post(ctx, "/users/logout", nil)
	return err
}

func (c *Client) Me(ctx context.Context) (session.User, error) {
	res, err := Into[session.User](c.Get(ctx, "/users/me"))
	return res.Data, err
}

func (c *Client) User(ctx context.Context, id string) (session.User, error) {
	res, err := Into[session.User](c.Get(ctx, "/users/"+url.PathEscape(id)))
	return res.Data, err
}

func (c *Client) UpdateMe(ctx context.Context, patch session.UserPatch) (session.User, error) {
	res, err := Into[session.User](c.Put(ctx, "/users/me", patch))
	return res.Data, err
}

func (c *Client) Blogs(ctx context.Context, page, limit int) (envelope.Page[Blog], error) {
	res, err := Into[envelope.Page[Blog]](c.Get(ctx, "/blogs"+pageQuery(page, limit)))
	return res.Data, err
}

func (c *Client) BlogsByUser(ctx context.Context, userID string, page, limit int) (envelope.Page[Blog], error) {
	res, err := Into[envelope.Page[Blog]](c.Get(ctx, "/users/"+url.PathEscape(userID)+"/blogs"+pageQuery(page, limit)))
	return res.Data, err
}

func (c *Client) Blog(ctx context.Context, id string) (Blog, error) {
	res, err := Into[Blog](c.Get(ctx, "/blogs/"+url.PathEscape(id)))
	return res.Data, err
}

func (c *Client) CreateBlog(ctx context.Context, in BlogInput) (Blog, error) {
	res, err := Into[Blog](c.Post(ctx, "/blogs", in))
	return res.Data, err
}

func (c *Client) UpdateBlog(ctx context.Context, id string, patch BlogPatch) (Blog, error) {
	res, err := Into[Blog](c.Put(ctx, "/blogs/"+url.PathEscape(id), patch))
	return res.Data, err
}

func (c *Client) DeleteBlog(ctx context.Context, id string) error {
	_, err := c.Delete(ctx, "/blogs/"+url.PathEscape(id))
	return err
}

func (c *Client) Comments(ctx context.Context, blogID string) ([]Comment, error) {
	res, err := Into[[]Comment](c.Get(ctx, "/comments/blog/"+url.PathEscape(blogID)))
	return res.Data, err
}

func (c *Client) AddComment(ctx context.Context, blogID, content string) (Comment, error) {
	res, err := Into[Comment](c.Post(ctx, "/comments/blog/"+url.PathEscape(blogID), map[string]string{"content": content}))
	return res.Data, err
}

func (c *Client) Reply(ctx context.Context, commentID, content string) (Comment, error) {
	res, err := Into[Comment](c.Post(ctx, "/comments/"+url.PathEscape(commentID)+"/reply", map[string]string{"content": content}))
	return res.Data, err
}

func (c *Client) UpdateComment(ctx context.Context, id, content string) (Comment, error) {
	res, err := Into[Comment](c.Put(ctx, "/comments/"+url.PathEscape(id), map[string]string{"content": content}))
	return res.Data, err
}

func (c *Client) DeleteComment(ctx context.Context, id string) error {
	_, err := c.Delete(ctx, "/comments/"+url.PathEscape(id))
	return err
}

func (c *Client) Follow(ctx context.Context, userID string) error {
	_, err := c.Post(ctx, "/users/"+url.PathEscape(userID)+"/follow", nil)
	return err
}

func (c *Client) Unfollow(ctx context.Context, userID string) error {
	_, err := c.Delete(ctx, "/users/"+url.PathEscape(userID)+"/follow")
	return err
}

func (c *Client) Followers(ctx context.Context, userID string) ([]session.User, error) {
	res, err := Into[[]session.User](c.Get(ctx, "/users/"+url.PathEscape(userID)+"/followers"))
	return res.Data, err
}

func (c *Client) Following(ctx context.Context, userID string) ([]session.User, error) {
	res, err := Into[[]session.User](c.Get(ctx, "/users/"+url.PathEscape(userID)+"/following"))
	return res.Data, err
}

func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	res, err := Into[[]Notification](c.Get(ctx, "/notifications"))
	return res.Data, err
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	_, err := c.Put(ctx, "/notifications/"+url.PathEscape(id)+"/read", nil)
	return err
}

// MarkAllNotificationsRead returns how many notifications changed.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) (int64, error) {
	res, err := Into[struct {
		Updated int64 `json:"updated"`
	}](c.Put(ctx, "/notifications/read-all", nil))
	return res.Data.Updated, err
}

func (c *Client) UploadPhoto(ctx context.Context, fileName, contentType, caption string, body io.Reader) (Photo, error) {
	fields := map[string]string{}
	if caption != "" {
		fields["caption"] = caption
	}
	res, err := Into[Photo](c.Upload(ctx, "/photos", fields, FilePart{
		Field:       "file",
		FileName:    fileName,
		ContentType: contentType,
		Body:        body,
	}))
	return res.Data, err
}

func (c *Client) MyPhotos(ctx context.Context) ([]Photo, error) {
	res, err := Into[[]Photo](c.Get(ctx, "/photos"))
	return res.Data, err
}

func (c *Client) PhotosByUser(ctx context.Context, userID string) ([]Photo, error) {
	res, err := Into[[]Photo](c.Get(ctx, "/users/"+url.PathEscape(userID)+"/photos"))
	return res.Data, err
}

func (c *Client) PhotoContent(ctx context.Context, id string, dst io.Writer) (int64, error) {
	return c.Download(ctx, "/photos/"+url.PathEscape(id)+"/content", dst)
}

func (c *Client) DeletePhoto(ctx context.Context, id string) error {
	_, err := c.Delete(ctx, "/photos/"+url.PathEscape(id))
	return err
}

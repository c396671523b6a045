package remote

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

// ListNotifications GET /notifications[?unread=bool].
func (c *Client) ListNotifications(ctx context.Context, unread *bool) ([]entity.Notification, error) {
	path := "/notifications"
	if unread != nil {
		path += "?unread=" + strconv.FormatBool(*unread)
	}
	var out struct {
		Notifications []entity.Notification `json:"notifications"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Notifications, nil
}

// MarkNotificationRead POST /notifications/{id}/read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/notifications/"+seg(id)+"/read", nil, nil)
}

// MarkNotificationUnread POST /notifications/{id}/unread.
func (c *Client) MarkNotificationUnread(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/notifications/"+seg(id)+"/unread", nil, nil)
}

// MarkAllNotificationsRead POST /notifications/mark-all-read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/notifications/mark-all-read", nil, nil)
}

// ClearNotifications DELETE /notifications/clear.
func (c *Client) ClearNotifications(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/notifications/clear", nil, nil)
}

package subscription

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashokpds15/Myself/pkg/blogger"
	"github.com/ashokpds15/Myself/pkg/mail"
	"github.com/ashokpds15/Myself/pkg/subscriber"
)

// Notifier delivers one notification to a set of recipients.
type Notifier interface {
	Notify(ctx context.Context, msg mail.Notification, recipients []string) (mail.Summary, error)
}

// Auditor receives the events worth keeping an audit trail of.
type Auditor interface {
	Subscribed(ctx context.Context, email, sourceIP string)
	Unsubscribed(ctx context.Context, email, sourceIP string)
	NotificationCompleted(ctx context.Context, trigger, subject, sourceIP string, sent, failed, total int)
}

type Controller struct {
	store    subscriber.Store
	notifier Notifier
	posts    blogger.Fetcher
	audit    Auditor
	adminKey string
	public   []gin.HandlerFunc
	log      *zap.SugaredLogger
}

// Options bundles the controller's collaborators. Audit and PublicMiddleware
// are optional.
type Options struct {
	Store            subscriber.Store
	Notifier         Notifier
	Posts            blogger.Fetcher
	Audit            Auditor
	AdminAPIKey      string
	PublicMiddleware []gin.HandlerFunc
}

func NewController(log *zap.SugaredLogger, opts Options) *Controller {
	audit := opts.Audit
	if audit == nil {
		audit = nopAuditor{}
	}
	return &Controller{
		store:    opts.Store,
		notifier: opts.Notifier,
		posts:    opts.Posts,
		audit:    audit,
		adminKey: opts.AdminAPIKey,
		public:   opts.PublicMiddleware,
		log:      log.Named("subscription"),
	}
}

func (c *Controller) BasePath() string { return "" }

func (c *Controller) Handlers() []gin.HandlerFunc { return nil }

func (c *Controller) Register(rg *gin.RouterGroup) error {
	public := rg.Group("", c.public...)
	public.POST("/subscribe", c.handleSubscribe)
	public.POST("/unsubscribe", c.handleUnsubscribe)
	public.GET("/posts", c.handleListPosts)
	public.GET("/posts/:id", c.handleGetPost)

	admin := rg.Group("", RequireAPIKey(c.adminKey))
	admin.GET("/subscribers", c.handleListSubscribers)
	admin.POST("/notify-subscribers", c.handleNotify)
	admin.POST("/auto-notify-latest-blog", c.handleAutoNotify)
	return nil
}

type nopAuditor struct{}

func (nopAuditor) Subscribed(context.Context, string, string)   {}
func (nopAuditor) Unsubscribed(context.Context, string, string) {}
func (nopAuditor) NotificationCompleted(context.Context, string, string, string, int, int, int) {
}

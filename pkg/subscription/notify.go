package subscription

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashokpds15/Myself/pkg/apiresponses"
	"github.com/ashokpds15/Myself/pkg/apitypes"
	"github.com/ashokpds15/Myself/pkg/blogger"
	"github.com/ashokpds15/Myself/pkg/mail"
	"github.com/ashokpds15/Myself/pkg/metrics"
	"github.com/ashokpds15/Myself/pkg/system"
)

const (
	triggerManual = "manual"
	triggerLatest = "latest"

	noSubscribersMessage = "No subscribers to notify"
)

func (c *Controller) handleNotify(ctx *gin.Context) {
	ctx.Set("trigger", triggerManual)
	log := system.EnrichReqLoggerWithTrigger(ctx, system.GetReqLogger(ctx, c.log))

	var req apitypes.NotifyRequest
	_ = ctx.ShouldBindJSON(&req)
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.HTMLContent) == "" {
		apiresponses.RespondBadRequest(ctx, "Subject and content required")
		return
	}

	msg := mail.Notification{
		Subject: req.Subject,
		Body:    req.HTMLContent,
		Title:   req.BlogTitle,
		Link:    req.BlogLink,
	}
	summary, ok := c.run(ctx, log, triggerManual, msg)
	if !ok {
		return
	}

	message := "Emails sent successfully"
	if summary.Total == 0 {
		message = noSubscribersMessage
	}
	apiresponses.RespondOK(ctx, apitypes.NotifyResponse{
		Message: message,
		Sent:    summary.Sent,
		Failed:  summary.Failed,
		Total:   summary.Total,
	})
}

func (c *Controller) handleAutoNotify(ctx *gin.Context) {
	ctx.Set("trigger", triggerLatest)
	log := system.EnrichReqLoggerWithTrigger(ctx, system.GetReqLogger(ctx, c.log))

	post, err := c.posts.FetchLatest(ctx.Request.Context())
	switch {
	case errors.Is(err, blogger.ErrNoPosts):
		apiresponses.RespondNotFound(ctx, "No blog posts found")
		return
	case err != nil:
		apiresponses.RespondInternalError(ctx, "Failed to fetch latest blog post", err, log)
		return
	}

	summary, ok := c.run(ctx, log.With("postID", post.ID), triggerLatest, post.Notification())
	if !ok {
		return
	}

	message := "Latest blog post notification sent"
	if summary.Total == 0 {
		message = noSubscribersMessage
	}
	apiresponses.RespondOK(ctx, apitypes.AutoNotifyResponse{
		Message:   message,
		BlogTitle: post.Title,
		Sent:      summary.Sent,
		Failed:    summary.Failed,
		Total:     summary.Total,
	})
}

// run loads the recipients and notifies them. On failure it has already
// written the error response and returns false.
func (c *Controller) run(ctx *gin.Context, log *zap.SugaredLogger, trigger string, msg mail.Notification) (mail.Summary, bool) {
	recipients, err := c.store.Emails(ctx.Request.Context())
	if err != nil {
		apiresponses.RespondInternalError(ctx, "Failed to fetch subscribers", err, log)
		return mail.Summary{}, false
	}

	metrics.NotificationRuns.WithLabelValues(trigger).Inc()
	if len(recipients) == 0 {
		log.Info("No subscribers to notify")
		return mail.Summary{}, true
	}

	summary, err := c.notifier.Notify(ctx.Request.Context(), msg, recipients)
	if err != nil {
		apiresponses.RespondInternalError(ctx, "Failed to send notifications", err, log)
		return mail.Summary{}, false
	}

	c.audit.NotificationCompleted(ctx.Request.Context(), trigger, msg.Subject, ctx.ClientIP(),
		summary.Sent, summary.Failed, summary.Total)
	log.Infow("Notification sent", "sent", summary.Sent, "failed", summary.Failed, "total", summary.Total)
	return summary, true
}

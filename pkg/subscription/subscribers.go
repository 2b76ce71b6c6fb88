package subscription

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ashokpds15/Myself/pkg/apiresponses"
	"github.com/ashokpds15/Myself/pkg/apitypes"
	"github.com/ashokpds15/Myself/pkg/metrics"
	"github.com/ashokpds15/Myself/pkg/subscriber"
	"github.com/ashokpds15/Myself/pkg/system"
)

func (c *Controller) handleSubscribe(ctx *gin.Context) {
	log := system.GetReqLogger(ctx, c.log)

	var req apitypes.EmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || !strings.Contains(req.Email, "@") {
		metrics.Subscriptions.WithLabelValues("invalid").Inc()
		apiresponses.RespondBadRequest(ctx, "Invalid email address")
		return
	}

	sub, err := c.store.Add(ctx.Request.Context(), req.Email)
	switch {
	case errors.Is(err, subscriber.ErrInvalidEmail):
		metrics.Subscriptions.WithLabelValues("invalid").Inc()
		apiresponses.RespondBadRequest(ctx, "Invalid email address")
		return
	case errors.Is(err, subscriber.ErrDuplicateEmail):
		metrics.Subscriptions.WithLabelValues("duplicate").Inc()
		apiresponses.RespondBadRequest(ctx, "Email already subscribed")
		return
	case err != nil:
		metrics.Subscriptions.WithLabelValues("error").Inc()
		apiresponses.RespondInternalError(ctx, "Failed to subscribe", err, log)
		return
	}

	metrics.Subscriptions.WithLabelValues("created").Inc()
	c.audit.Subscribed(ctx.Request.Context(), sub.Email, ctx.ClientIP())
	log.Infow("New subscriber", "id", sub.ID)
	apiresponses.RespondCreated(ctx, apitypes.EmailResponse{Message: "Successfully subscribed!", Email: sub.Email})
}

func (c *Controller) handleUnsubscribe(ctx *gin.Context) {
	log := system.GetReqLogger(ctx, c.log)

	var req apitypes.EmailRequest
	_ = ctx.ShouldBindJSON(&req)
	email := strings.TrimSpace(req.Email)
	if email == "" {
		metrics.Unsubscriptions.WithLabelValues("invalid").Inc()
		apiresponses.RespondBadRequest(ctx, "Email required")
		return
	}

	err := c.store.Remove(ctx.Request.Context(), email)
	switch {
	case errors.Is(err, subscriber.ErrNotFound):
		metrics.Unsubscriptions.WithLabelValues("not_found").Inc()
		apiresponses.RespondNotFound(ctx, "Email not found")
		return
	case err != nil:
		metrics.Unsubscriptions.WithLabelValues("error").Inc()
		apiresponses.RespondInternalError(ctx, "Failed to unsubscribe", err, log)
		return
	}

	metrics.Unsubscriptions.WithLabelValues("removed").Inc()
	c.audit.Unsubscribed(ctx.Request.Context(), email, ctx.ClientIP())
	log.Info("Subscriber removed")
	apiresponses.RespondOK(ctx, apitypes.EmailResponse{Message: "Successfully unsubscribed", Email: email})
}

func (c *Controller) handleListSubscribers(ctx *gin.Context) {
	subs, err := c.store.List(ctx.Request.Context())
	if err != nil {
		apiresponses.RespondInternalError(ctx, "Failed to fetch subscribers", err, system.GetReqLogger(ctx, c.log))
		return
	}

	resp := apitypes.SubscribersResponse{Subscribers: make([]apitypes.SubscriberEntry, 0, len(subs))}
	for _, s := range subs {
		resp.Subscribers = append(resp.Subscribers, apitypes.SubscriberEntry{Email: s.Email})
	}
	apiresponses.RespondOK(ctx, resp)
}

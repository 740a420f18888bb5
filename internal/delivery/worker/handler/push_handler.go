// Package handler contains the worker's push endpoint handlers.
package handler

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// PushHandler consumes audit events delivered over Pub/Sub push and appends
// them to the activity log.
type PushHandler struct {
	verifyPushAuth bool
	logger         *slog.Logger
	recorder       service.AuditRecorder
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config   *config.Config
	Logger   *slog.Logger
	Recorder service.AuditRecorder
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Google-signed push deliveries are verified outside development.
	verifyPushAuth := params.Config != nil &&
		params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		logger:         params.Logger,
		recorder:       params.Recorder,
	}
}

// HandlePush processes one push delivery. A malformed message is acknowledged
// and dropped so Pub/Sub does not redeliver it forever; a failed append
// answers 500 so delivery is retried.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request()); err != nil {
			logger.Warn("Rejecting push delivery with invalid token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var msg PubSubMessage
	if err := c.Bind(&msg); err != nil {
		logger.Warn("Dropping unparsable push delivery", slog.Any("error", err))

		return c.NoContent(http.StatusNoContent)
	}

	payload, err := base64.StdEncoding.DecodeString(msg.Message.Data)
	if err != nil {
		logger.Warn("Dropping push delivery with invalid base64 data",
			slog.String("messageId", msg.Message.MessageID), slog.Any("error", err))

		return c.NoContent(http.StatusNoContent)
	}

	var event service.AuditEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		logger.Warn("Dropping push delivery with invalid audit payload",
			slog.String("messageId", msg.Message.MessageID), slog.Any("error", err))

		return c.NoContent(http.StatusNoContent)
	}

	if err := h.recorder.RecordAuditEvent(ctx, &event); err != nil {
		logger.Error("Failed to record audit event, requesting redelivery",
			slog.String("messageId", msg.Message.MessageID),
			slog.String("action", event.Action),
			slog.Any("error", err))

		return c.NoContent(http.StatusInternalServerError)
	}

	logger.Debug("Recorded audit event",
		slog.String("messageId", msg.Message.MessageID),
		slog.String("action", event.Action))

	return c.NoContent(http.StatusNoContent)
}

// verifyPubSubToken verifies the Google-signed ID token carried by standard
// Pub/Sub push requests.
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The expected audience is this endpoint's own URL.
	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := idtoken.Validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}

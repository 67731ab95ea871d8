package transport

import (
	"encoding/json"
	"net/http"

	"github.com/subtrackhq/subtrack/internal/entity"
	"github.com/subtrackhq/subtrack/internal/service"
	"github.com/subtrackhq/subtrack/pkg/paddle"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type WebhookHandler struct {
	billingService service.BillingService
	paddleClient   *paddle.Client
	webhookSecret  string
}

func NewWebhookHandler(billingService service.BillingService, paddleClient *paddle.Client, webhookSecret string) *WebhookHandler {
	return &WebhookHandler{
		billingService: billingService,
		paddleClient:   paddleClient,
		webhookSecret:  webhookSecret,
	}
}

// HandlePaddleWebhook receives Paddle lifecycle events. The signature is
// checked over the raw body before any JSON parsing happens.
func (h *WebhookHandler) HandlePaddleWebhook(c *gin.Context) {
	signature := c.GetHeader("paddle-signature")
	if signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing paddle-signature header"})
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	if err := paddle.VerifySignature(signature, body, h.webhookSecret); err != nil {
		logrus.WithError(err).Warn("Rejected webhook with bad signature")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook signature"})
		return
	}

	var event entity.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook payload"})
		return
	}

	if err := h.billingService.ProcessWebhook(c.Request.Context(), &event); err != nil {
		logrus.WithError(err).Error("Failed to process webhook event")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.String(http.StatusOK, "OK")
}

// ProxyPaddleLookup relays product and price lookups to the Paddle API so the
// frontend never sees the API token. Upstream status and body pass through
// verbatim.
func (h *WebhookHandler) ProxyPaddleLookup(c *gin.Context) {
	lookupType := c.Query("type")
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id query parameter is required"})
		return
	}

	var (
		resp *paddle.ProxyResponse
		err  error
	)
	switch lookupType {
	case "product":
		resp, err = h.paddleClient.GetProduct(c.Request.Context(), id)
	case "price":
		resp, err = h.paddleClient.GetPrice(c.Request.Context(), id)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be product or price"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.StatusCode, contentType, resp.Body)
}

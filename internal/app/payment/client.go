package payment

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"francoggm/batch-charger/internal/models"

	"github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

type PaymentClient struct {
	url           string
	authorization string
	traceparent   string
	timeout       time.Duration
	client        *fasthttp.Client
	logger        *zap.Logger
}

func NewPaymentClient(url, apiKey, traceparent string, timeout time.Duration, maxConnsPerHost int, logger *zap.Logger) *PaymentClient {
	// Attempts over MaxConnsPerHost wait for a free connection, bounded by
	// their own request deadline.
	client := &fasthttp.Client{
		MaxConnsPerHost:    maxConnsPerHost,
		MaxConnWaitTimeout: timeout,
	}

	return &PaymentClient{
		url:           url,
		authorization: "Bearer " + apiKey,
		traceparent:   traceparent,
		timeout:       timeout,
		client:        client,
		logger:        logger,
	}
}

// MakeCharge posts one charge. The body is decoded before the status is
// checked because the API answers failures with a JSON error payload.
func (c *PaymentClient) MakeCharge(ctx context.Context, charge *models.ChargeRequest) (*models.ChargeResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("charge request not sent: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	payload, err := sonic.Marshal(charge)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal charge: %w", err)
	}

	req.SetRequestURI(c.url)
	req.Header.SetMethod(http.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Traceparent", c.traceparent)
	req.Header.Set("Authorization", c.authorization)
	req.SetBody(payload)

	if err := c.client.DoDeadline(req, resp, c.deadline(ctx)); err != nil {
		c.logger.Error("Error calling payment API", zap.Int64("customer_id", charge.CustomerID), zap.Error(err))
		return nil, fmt.Errorf("failed to make charge request: %w", err)
	}

	// resp is released on return; keep our own copy of the body.
	body := append([]byte(nil), resp.Body()...)
	statusCode := resp.StatusCode()

	var data any
	if err := sonic.Unmarshal(body, &data); err != nil {
		c.logger.Error("Error decoding payment API response",
			zap.Int64("customer_id", charge.CustomerID),
			zap.Int("status_code", statusCode),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to unmarshal charge response: %w", err)
	}

	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return nil, statusReject(statusCode, body)
	}

	return &models.ChargeResponse{
		StatusCode: statusCode,
		Body:       data,
	}, nil
}

func (c *PaymentClient) deadline(ctx context.Context) time.Time {
	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		return ctxDeadline
	}

	return deadline
}

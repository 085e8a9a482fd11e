// api/payment/middleware.go
package payment

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	echo_errors "github.com/dev-mohitbeniwal/weathergate/api/errors"
	logger "github.com/dev-mohitbeniwal/weathergate/api/logging"
	"github.com/dev-mohitbeniwal/weathergate/api/util"
)

// PayerContextKey holds the payer address reported by the facilitator
const PayerContextKey = "payer"

// USDC contract per network
var assets = map[string]string{
	"base":         "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
	"base-sepolia": "0x036CbD53842c5426634e7929541eC2318f3dCF7e",
}

// PriceFunc returns the price of a request in the asset's base units
type PriceFunc func(c *gin.Context) int64

// FlatPrice charges the same amount for every request
func FlatPrice(amount int64) PriceFunc {
	return func(*gin.Context) int64 { return amount }
}

type Options struct {
	Price             PriceFunc
	PayTo             string
	Network           string
	Description       string
	MaxTimeoutSeconds int
}

// Middleware requires a verified payment before the handler runs and settles
// it only when the handler answered with a 2xx status.
func Middleware(facilitator Facilitator, opts Options) gin.HandlerFunc {
	if opts.MaxTimeoutSeconds == 0 {
		opts.MaxTimeoutSeconds = 60
	}

	return func(c *gin.Context) {
		price := opts.Price(c)
		if price <= 0 {
			c.Next()
			return
		}

		requirements := &Requirements{
			Scheme:            SchemeExact,
			Network:           opts.Network,
			MaxAmountRequired: strconv.FormatInt(price, 10),
			Resource:          c.Request.URL.Path,
			Description:       opts.Description,
			MimeType:          "application/json",
			PayTo:             opts.PayTo,
			MaxTimeoutSeconds: opts.MaxTimeoutSeconds,
			Asset:             assets[opts.Network],
		}

		header := c.GetHeader(PaymentHeader)
		if header == "" {
			paymentRequired(c, requirements, fmt.Sprintf("%s header is required", PaymentHeader), echo_errors.ErrPaymentRequired)
			return
		}

		payload, err := DecodePayload(header)
		if err != nil {
			paymentRequired(c, requirements, fmt.Sprintf("Invalid %s header", PaymentHeader), err)
			return
		}
		payload.X402Version = Version

		ctx := c.Request.Context()
		verified, err := facilitator.Verify(ctx, payload, requirements)
		if err != nil {
			util.RespondWithError(c, http.StatusInternalServerError, "Payment verification unavailable", err)
			return
		}
		if !verified.IsValid {
			paymentRequired(c, requirements, verified.InvalidReason, echo_errors.ErrPaymentInvalid)
			return
		}
		c.Set(PayerContextKey, verified.Payer)

		writer := &capturingWriter{ResponseWriter: c.Writer, status: http.StatusOK}
		c.Writer = writer
		c.Next()
		c.Writer = writer.ResponseWriter

		if writer.status < http.StatusOK || writer.status >= http.StatusMultipleChoices {
			logger.Debug("Skipping settlement for unsuccessful response",
				zap.Int("status", writer.status),
				zap.String("payer", verified.Payer))
			writer.flush()
			return
		}

		receipt, err := facilitator.Settle(ctx, payload, requirements)
		if err != nil {
			paymentRequired(c, requirements, "Payment settlement failed", err)
			return
		}

		encoded, err := receipt.Encode()
		if err != nil {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to encode payment receipt", err)
			return
		}

		logger.Info("Payment settled",
			zap.String("payer", receipt.Payer),
			zap.String("transaction", receipt.Transaction),
			zap.String("network", receipt.Network),
			zap.Int64("amount", price))

		c.Header(PaymentResponseHeader, encoded)
		writer.flush()
	}
}

func paymentRequired(c *gin.Context, requirements *Requirements, reason string, err error) {
	logger.Warn("Payment required",
		zap.String("path", c.Request.URL.Path),
		zap.String("reason", reason),
		zap.Error(err))
	c.AbortWithStatusJSON(http.StatusPaymentRequired, RequiredResponse{
		X402Version: Version,
		Error:       reason,
		Accepts:     []Requirements{*requirements},
	})
}

// capturingWriter holds back the downstream response until the payment
// outcome is known.
type capturingWriter struct {
	gin.ResponseWriter
	body    bytes.Buffer
	status  int
	written bool
}

func (w *capturingWriter) WriteHeader(code int) {
	if !w.written {
		w.status = code
		w.written = true
	}
}

func (w *capturingWriter) WriteHeaderNow() {
	w.written = true
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.written = true
	return w.body.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.written = true
	return w.body.WriteString(s)
}

func (w *capturingWriter) Status() int {
	return w.status
}

func (w *capturingWriter) Written() bool {
	return w.written
}

func (w *capturingWriter) Size() int {
	return w.body.Len()
}

func (w *capturingWriter) flush() {
	w.ResponseWriter.WriteHeader(w.status)
	if _, err := w.ResponseWriter.Write(w.body.Bytes()); err != nil {
		logger.Error("Failed to write response", zap.Error(err))
	}
}

package acquirer

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"pagfx-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Pix charges expire a day after creation.
const pixChargeTTL = 24 * time.Hour

// SimulatedGateway implements ports.AcquirerGateway without talking to a
// real provider. Tokens are opaque and random; the shapes match what the
// production acquirer returns so nothing downstream can tell the
// difference.
type SimulatedGateway struct {
	log zerolog.Logger
}

// NewSimulatedGateway creates a new SimulatedGateway.
func NewSimulatedGateway(log zerolog.Logger) *SimulatedGateway {
	return &SimulatedGateway{log: log}
}

// CreatePixCharge issues a Pix charge payload for the transaction.
func (g *SimulatedGateway) CreatePixCharge(_ context.Context, transactionID uuid.UUID, amount decimal.Decimal) (*domain.PixData, error) {
	code, err := randomToken(16)
	if err != nil {
		return nil, fmt.Errorf("generating pix code: %w", err)
	}

	// EMV-style BR Code: merchant account template carrying the
	// transaction id, followed by currency (986 = BRL) and amount.
	qr := fmt.Sprintf(
		"00020126580014br.gov.bcb.pix0136%s5204000053039865404%s5802BR",
		transactionID, amount.StringFixed(2),
	)

	g.log.Debug().
		Str("tx_id", transactionID.String()).
		Msg("cobrança Pix simulada emitida")

	return &domain.PixData{
		QRCode:      qr,
		PaymentCode: code,
		ExpiresAt:   time.Now().UTC().Add(pixChargeTTL),
	}, nil
}

// AuthorizeCard simulates a card authorization. The last four digits
// come from the card number when present; when only a hash was supplied
// they are synthesized, since the real PAN is not recoverable.
func (g *SimulatedGateway) AuthorizeCard(_ context.Context, transactionID uuid.UUID, _ decimal.Decimal, card *domain.CardDetails, cardHash string) (*domain.CardData, error) {
	authCode, err := randomToken(8)
	if err != nil {
		return nil, fmt.Errorf("generating authorization code: %w", err)
	}

	lastFour, err := resolveLastFour(card, cardHash)
	if err != nil {
		return nil, err
	}

	g.log.Debug().
		Str("tx_id", transactionID.String()).
		Str("last_four", lastFour).
		Msg("autorização de cartão simulada")

	return &domain.CardData{
		AuthorizationCode:     authCode,
		ProviderTransactionID: "acq_" + uuid.New().String(),
		LastFour:              lastFour,
	}, nil
}

func resolveLastFour(card *domain.CardDetails, cardHash string) (string, error) {
	if card != nil && len(card.Number) >= 4 {
		return card.Number[len(card.Number)-4:], nil
	}
	if cardHash == "" {
		return "", fmt.Errorf("no card number or hash to derive last four")
	}

	digits := make([]byte, 4)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("synthesizing last four: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

func randomToken(byteLen int) (string, error) {
	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// NativeTokenId names the native coin; it is paid through the transaction value, not ESDT transfers.
const NativeTokenId = "EGLD"

var ErrInvalidPayment = errors.New("invalid payment")

// Payment is a single token transfer attached to a call.
type Payment struct {
	TokenId string
	Nonce   uint64
	Amount  Value
}

func NewPayment(tokenId string, nonce uint64, amount Value) *Payment {
	return &Payment{TokenId: tokenId, Nonce: nonce, Amount: amount}
}

// IsNFT reports whether the payment moves a token instance (nonce > 0).
func (p *Payment) IsNFT() bool {
	return p.Nonce > 0
}

// IsNative reports whether the payment moves the native coin. An empty token identifier means the native coin too.
func (p *Payment) IsNative() bool {
	return p.Nonce == 0 && (p.TokenId == NativeTokenId || p.TokenId == "")
}

func (p *Payment) String() string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d:%s", p.TokenId, p.Nonce, p.Amount)
}

// ParsePayment parses "TOKEN-abcdef:nonce:amount". The nonce may be omitted ("TOKEN-abcdef:amount").
func ParsePayment(s string) (*Payment, error) {
	parts := strings.Split(s, ":")
	var tokenId, nonceStr, amountStr string
	switch len(parts) {
	case 2:
		tokenId, nonceStr, amountStr = parts[0], "0", parts[1]
	case 3:
		tokenId, nonceStr, amountStr = parts[0], parts[1], parts[2]
	default:
		return nil, fmt.Errorf("%w: %q, expected <token>:<nonce>:<amount>", ErrInvalidPayment, s)
	}
	if tokenId == "" {
		return nil, fmt.Errorf("%w: %q: empty token identifier", ErrInvalidPayment, s)
	}
	digits, base := NumberBase(nonceStr)
	nonce, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: nonce: %w", ErrInvalidPayment, s, err)
	}
	var amount Value
	if err := amount.Set(amountStr); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPayment, s, err)
	}
	return NewPayment(tokenId, nonce, amount), nil
}

// PaymentFlag adapts an optional payment to pflag.Value.
type PaymentFlag struct {
	Payment *Payment
}

var (
	_ pflag.Value = (*PaymentFlag)(nil)
	_ pflag.Value = (*Value)(nil)
	_ pflag.Value = (*Address)(nil)
)

func (f *PaymentFlag) Set(value string) error {
	p, err := ParsePayment(value)
	if err != nil {
		return err
	}
	f.Payment = p
	return nil
}

func (f *PaymentFlag) String() string {
	return f.Payment.String()
}

func (*PaymentFlag) Type() string {
	return "Payment"
}

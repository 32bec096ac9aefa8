package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"almanar_backend/internals/configs"
)

var snapClient snap.Client
var snapReady bool

// InitMidtrans wires the Snap client. Without a server key the online
// checkout path stays disabled and bank-transfer proofs still work.
func InitMidtrans() {
	key := strings.TrimSpace(configs.MidtransServerKey)
	if key == "" {
		log.Println("[WARN] MIDTRANS_SERVER_KEY empty, online checkout disabled")
		return
	}
	env := midtrans.Sandbox
	if strings.EqualFold(configs.GetEnv("MIDTRANS_ENV", "sandbox"), "production") {
		env = midtrans.Production
	}
	snapClient.New(key, env)
	snapReady = true
	log.Println("✅ Midtrans Snap client ready")
}

// CheckoutReady reports whether online checkout can be offered.
func CheckoutReady() bool {
	return snapReady
}

// GenerateSnapToken creates a Snap transaction for paying down a debt
// and returns the token plus the order id the webhook will echo back.
func GenerateSnapToken(debtID uuid.UUID, studentName string, amount float64) (token string, orderID string, err error) {
	if !snapReady {
		return "", "", fmt.Errorf("midtrans disabled")
	}
	if amount <= 0 {
		return "", "", fmt.Errorf("amount must be positive")
	}

	orderID = fmt.Sprintf("debt-%s-%d", debtID.String(), time.Now().Unix())
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: int64(amount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: studentName,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    debtID.String(),
			Name:  "سداد مستحقات دراسية",
			Price: int64(amount),
			Qty:   1,
		}},
	}

	resp, snapErr := snapClient.CreateTransaction(req)
	if snapErr != nil {
		return "", "", fmt.Errorf("create snap transaction: %w", snapErr)
	}
	return resp.Token, orderID, nil
}

// ParseOrderDebtID extracts the debt id from an order id minted by
// GenerateSnapToken.
func ParseOrderDebtID(orderID string) (uuid.UUID, error) {
	parts := strings.Split(orderID, "-")
	// debt-<uuid with 4 dashes>-<ts>
	if len(parts) < 7 || parts[0] != "debt" {
		return uuid.Nil, fmt.Errorf("unrecognized order id %q", orderID)
	}
	return uuid.Parse(strings.Join(parts[1:6], "-"))
}

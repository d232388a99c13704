package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID int) ([]byte, error)
}

// PickupQRGenerator encodes the link a driver scans when collecting an order.
type PickupQRGenerator struct {
	BaseURL string
}

func (g PickupQRGenerator) Generate(orderID int) ([]byte, error) {
	return qrcode.Encode(g.Link(orderID), qrcode.Medium, 256)
}

func (g PickupQRGenerator) Link(orderID int) string {
	return fmt.Sprintf("%s/pickup?order_id=%d", g.BaseURL, orderID)
}

package services

import (
	"encoding/base64"
	"html/template"
	"strings"

	"github.com/skip2/go-qrcode"
)

// OrderURL construit le lien public de la page de confirmation
func OrderURL(baseURL, orderNumber string) string {
	return strings.TrimRight(baseURL, "/") + "/order/success/" + orderNumber
}

// OrderQRCode retourne un PNG en data URI, utilisable dans un <img src>
func OrderQRCode(link string) (template.URL, error) {
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)), nil
}

package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	skuAlphabet   = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	skuLength     = 9
	barcodeDigits = "0123456789"
	barcodeLength = 12
)

func randomString(alphabet string, length int) string {
	result := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand практически не возвращает ошибок; fallback на первый символ
			result[i] = alphabet[0]
			continue
		}
		result[i] = alphabet[n.Int64()]
	}
	return string(result)
}

// GenerateSKU создает случайный артикул вида SKU-X9X9X9X9X.
// Артикул назначается только сервером при создании товара.
func GenerateSKU() string {
	return "SKU-" + randomString(skuAlphabet, skuLength)
}

// GenerateBarcode создает случайный 12-значный штрихкод
func GenerateBarcode() string {
	return randomString(barcodeDigits, barcodeLength)
}

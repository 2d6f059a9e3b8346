package utils

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

func GenerateOTP() string {
	// Generate a 4-digit OTP
	var number [2]byte
	rand.Read(number[:])
	return fmt.Sprintf("%04d", binary.BigEndian.Uint16(number[:])%10000)
}

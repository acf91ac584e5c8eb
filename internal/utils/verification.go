package utils

import (
	"context"
	"fmt"
	"math/rand"
)

// VerificationCodeLength is the number of digits in an OTP
const VerificationCodeLength = 6

// GenerateVerificationCode generates a random 6-digit verification code
func GenerateVerificationCode() string {
	code := ""
	for range VerificationCodeLength {
		code += fmt.Sprintf("%d", rand.Intn(10))
	}
	return code
}

// SendVerificationCode sends a verification code to a single phone number
func SendVerificationCode(ctx context.Context, phone string, code string) error {
	message := fmt.Sprintf("Your CrediMed verification code is %s. It expires in 5 minutes.", code)
	return SendSMS(ctx, phone, message)
}

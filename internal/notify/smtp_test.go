package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("eMart OTP <no-reply@emart.local>", "alice@example.com", "Your eMart OTP", "Your OTP is: 123456. It will expire in 5 minutes."))

	assert.Contains(t, msg, "From: eMart OTP <no-reply@emart.local>\r\n")
	assert.Contains(t, msg, "To: alice@example.com\r\n")
	assert.Contains(t, msg, "Subject: Your eMart OTP\r\n")
	assert.Contains(t, msg, "\r\n\r\nYour OTP is: 123456. It will expire in 5 minutes.\r\n")
}

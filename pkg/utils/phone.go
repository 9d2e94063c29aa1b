package utils

import (
	"errors"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var ErrInvalidPhoneNumber = errors.New("invalid phone number")

// NormalizePhoneNumber parses a phone number, optionally with a separate
// country code such as "+91", and returns it in E.164 form.
func NormalizePhoneNumber(phone, countryCode string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", ErrInvalidPhoneNumber
	}

	region := ""
	if cc := strings.TrimPrefix(strings.TrimSpace(countryCode), "+"); cc != "" {
		code, err := strconv.Atoi(cc)
		if err != nil {
			return "", ErrInvalidPhoneNumber
		}
		region = phonenumbers.GetRegionCodeForCountryCode(code)
		if region == "" || region == "ZZ" {
			return "", ErrInvalidPhoneNumber
		}
	}
	if region == "" && !strings.HasPrefix(phone, "+") {
		return "", ErrInvalidPhoneNumber
	}

	num, err := phonenumbers.Parse(phone, region)
	if err != nil {
		return "", ErrInvalidPhoneNumber
	}
	if !phonenumbers.IsPossibleNumber(num) {
		return "", ErrInvalidPhoneNumber
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// Package khqr encodes Bakong KHQR payment payloads.
//
// The payload is an EMV merchant-presented QR: a flat sequence of
// tag/length/value fields, some of which nest further TLV data, closed by
// a CRC-16 checksum. The MD5 of the full payload is the hash Bakong uses
// to track the transaction.
package khqr

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// EMV tag identifiers used by KHQR.
const (
	tagPayloadFormat      = "00"
	tagPointOfInitiation  = "01"
	tagMerchantAccount    = "29"
	tagMerchantCategory   = "52"
	tagCurrency           = "53"
	tagAmount             = "54"
	tagCountryCode        = "58"
	tagMerchantName       = "59"
	tagMerchantCity       = "60"
	tagAdditionalData     = "62"
	tagTimestamp          = "99"
	tagCRC                = "63"
	subTagBakongAccountID = "00"
	subTagBillNumber      = "01"
	subTagMobileNumber    = "02"
	subTagStoreLabel      = "03"
	subTagTerminalLabel   = "07"
	subTagCreationTime    = "00"

	pointOfInitiationStatic  = "11"
	pointOfInitiationDynamic = "12"

	merchantCategoryGeneral = "5999"
	countryCodeKH           = "KH"

	currencyCodeKHR = "116"
	currencyCodeUSD = "840"
)

// MerchantInfo identifies the payee encoded into every QR.
type MerchantInfo struct {
	AccountID string // Bakong account, e.g. name@bank
	Name      string
	City      string
}

// Payment describes a single QR to issue.
type Payment struct {
	Amount        float64
	Currency      string // KHR or USD
	BillNumber    string
	StoreLabel    string
	TerminalLabel string
	MobileNumber  string
	Static        bool
}

// Encoder builds KHQR payloads for a fixed merchant.
type Encoder struct {
	merchant MerchantInfo
	now      func() time.Time
}

// NewEncoder creates an encoder for the given merchant.
func NewEncoder(m MerchantInfo) *Encoder {
	return &Encoder{merchant: m, now: time.Now}
}

// Encode builds the full KHQR payload string including the trailing CRC.
func (e *Encoder) Encode(p Payment) (string, error) {
	if e.merchant.AccountID == "" {
		return "", fmt.Errorf("merchant account id is required")
	}
	amount, err := formatAmount(p.Amount, p.Currency)
	if err != nil {
		return "", err
	}
	currency, err := currencyCode(p.Currency)
	if err != nil {
		return "", err
	}

	initiation := pointOfInitiationDynamic
	if p.Static {
		initiation = pointOfInitiationStatic
	}

	var acct tlv
	acct.add(subTagBakongAccountID, e.merchant.AccountID)

	var extra tlv
	if p.BillNumber != "" {
		extra.add(subTagBillNumber, p.BillNumber)
	}
	if p.MobileNumber != "" {
		extra.add(subTagMobileNumber, p.MobileNumber)
	}
	if p.StoreLabel != "" {
		extra.add(subTagStoreLabel, p.StoreLabel)
	}
	if p.TerminalLabel != "" {
		extra.add(subTagTerminalLabel, p.TerminalLabel)
	}

	var ts tlv
	ts.add(subTagCreationTime, strconv.FormatInt(e.now().UnixMilli(), 10))

	var b tlv
	b.add(tagPayloadFormat, "01")
	b.add(tagPointOfInitiation, initiation)
	b.add(tagMerchantAccount, acct.String())
	b.add(tagMerchantCategory, merchantCategoryGeneral)
	b.add(tagCurrency, currency)
	if !p.Static {
		b.add(tagAmount, amount)
	}
	b.add(tagCountryCode, countryCodeKH)
	b.add(tagMerchantName, e.merchant.Name)
	b.add(tagMerchantCity, e.merchant.City)
	if extra.String() != "" {
		b.add(tagAdditionalData, extra.String())
	}
	b.add(tagTimestamp, ts.String())

	for _, err := range []error{acct.err, extra.err, ts.err, b.err} {
		if err != nil {
			return "", err
		}
	}

	payload := b.String() + tagCRC + "04"
	return payload + fmt.Sprintf("%04X", crc16([]byte(payload))), nil
}

// Hash returns the MD5 fingerprint of a payload, the key Bakong tracks
// the transaction by.
func Hash(payload string) string {
	sum := md5.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// VerifyCRC reports whether the payload's trailing checksum matches its
// content.
func VerifyCRC(payload string) bool {
	if len(payload) < 8 {
		return false
	}
	body := payload[:len(payload)-4]
	if !strings.HasSuffix(body, tagCRC+"04") {
		return false
	}
	return fmt.Sprintf("%04X", crc16([]byte(body))) == payload[len(payload)-4:]
}

// EMV lengths are two digits, so no field value may exceed 99 bytes.
const maxFieldLength = 99

// tlv accumulates tag/length/value fields, keeping the first overlong
// value as an error instead of emitting a malformed length.
type tlv struct {
	sb  strings.Builder
	err error
}

func (t *tlv) add(id, value string) {
	if t.err != nil {
		return
	}
	if len(value) > maxFieldLength {
		t.err = fmt.Errorf("field %s value exceeds %d characters", id, maxFieldLength)
		return
	}
	fmt.Fprintf(&t.sb, "%s%02d%s", id, len(value), value)
}

func (t *tlv) String() string {
	return t.sb.String()
}

func currencyCode(currency string) (string, error) {
	switch currency {
	case "KHR":
		return currencyCodeKHR, nil
	case "USD":
		return currencyCodeUSD, nil
	default:
		return "", fmt.Errorf("unsupported currency %q", currency)
	}
}

// formatAmount renders the amount the way Bakong expects: KHR amounts are
// whole numbers, USD amounts carry two decimals.
func formatAmount(amount float64, currency string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("amount must be positive")
	}
	if currency == "KHR" {
		if amount != math.Trunc(amount) {
			return "", fmt.Errorf("KHR amount must be a whole number")
		}
		return strconv.FormatFloat(amount, 'f', 0, 64), nil
	}
	return strconv.FormatFloat(amount, 'f', 2, 64), nil
}

// crc16 implements CRC-16/CCITT-FALSE, the checksum EMV QR payloads use.
func crc16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

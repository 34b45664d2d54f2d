package usbserial

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Messages in both directions are framed as
//
//	"   #" LLLL BODY
//
// where LLLL is the body length in upper-case hex and BODY is a four
// letter command, its payload and a four character checksum. The checksum
// is the 16-bit sum of the LLLL characters and the body without its
// checksum. The host sends "XXXX" instead of a checksum.
const (
	msgPrefix    = "   #"
	headerLen    = len(msgPrefix) + 4
	cmdLen       = 4
	checksumLen  = 4
	noChecksum   = "XXXX"
	rrseEndToken = "FF"
)

const (
	cmdRREG = "RREG"
	cmdWREG = "WREG"
	cmdRRSE = "RRSE"
	cmdGFRA = "GFRA"
)

var (
	// ErrTimeout is returned when no complete message arrived in time.
	ErrTimeout = errors.New("usbserial: read timeout")

	// ErrChecksum is returned for a message whose checksum does not match.
	ErrChecksum = errors.New("usbserial: checksum mismatch")

	// ErrMalformed is returned for a message that cannot be parsed.
	ErrMalformed = errors.New("usbserial: malformed message")
)

func command(cmd, payload string) []byte {
	body := cmd + payload + noChecksum
	return []byte(fmt.Sprintf("%s%04X%s", msgPrefix, len(body), body))
}

func rregCommand(addr uint8) []byte {
	return command(cmdRREG, fmt.Sprintf("%02X", addr))
}

func wregCommand(addr, value uint8) []byte {
	return command(cmdWREG, fmt.Sprintf("%02X%02X", addr, value))
}

func rrseCommand(addrs []uint8) []byte {
	var sb strings.Builder
	for _, addr := range addrs {
		fmt.Fprintf(&sb, "%02X", addr)
	}
	sb.WriteString(rrseEndToken)
	return command(cmdRRSE, sb.String())
}

func checksum(parts ...[]byte) uint16 {
	var sum uint16
	for _, p := range parts {
		for _, b := range p {
			sum += uint16(b)
		}
	}
	return sum
}

// parseLength decodes the LLLL field of a message header.
func parseLength(header []byte) (int, error) {
	n, err := strconv.ParseUint(string(header[len(msgPrefix):headerLen]), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: length %q", ErrMalformed, header[len(msgPrefix):headerLen])
	}
	if int(n) < cmdLen+checksumLen {
		return 0, fmt.Errorf("%w: body length %d too short", ErrMalformed, n)
	}
	return int(n), nil
}

// splitBody separates a message body into command and payload, verifying
// the checksum against the length field when verify is set.
func splitBody(length, body []byte, verify bool) (string, []byte, error) {
	cmd := string(body[:cmdLen])
	payload := body[cmdLen : len(body)-checksumLen]
	if !verify {
		return cmd, payload, nil
	}

	sumField := body[len(body)-checksumLen:]
	want, err := strconv.ParseUint(string(sumField), 16, 16)
	if err != nil {
		return "", nil, fmt.Errorf("%w: checksum %q", ErrMalformed, sumField)
	}
	if got := checksum(length, body[:len(body)-checksumLen]); got != uint16(want) {
		return "", nil, fmt.Errorf("%w: %s message has %04X, computed %04X", ErrChecksum, cmd, want, got)
	}
	return cmd, payload, nil
}

func parseRREG(payload []byte) (uint8, error) {
	v, err := strconv.ParseUint(string(payload), 16, 8)
	if err != nil || len(payload) != 2 {
		return 0, fmt.Errorf("%w: RREG payload %q", ErrMalformed, payload)
	}
	return uint8(v), nil
}

func parseWREG(payload []byte) error {
	if len(payload) != 0 {
		return fmt.Errorf("%w: WREG payload %q", ErrMalformed, payload)
	}
	return nil
}

func parseRRSE(payload []byte) (map[uint8]uint8, error) {
	if len(payload)%4 != 0 {
		return nil, fmt.Errorf("%w: RRSE payload of %d bytes", ErrMalformed, len(payload))
	}
	vals := make(map[uint8]uint8, len(payload)/4)
	for i := 0; i < len(payload); i += 4 {
		addr, err1 := strconv.ParseUint(string(payload[i:i+2]), 16, 8)
		v, err2 := strconv.ParseUint(string(payload[i+2:i+4]), 16, 8)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("%w: RRSE pair %q", ErrMalformed, payload[i:i+4])
		}
		vals[uint8(addr)] = uint8(v)
	}
	return vals, nil
}

// frameLayout locates header and pixel data inside a GFRA payload, in
// bytes. Payloads start with a reserved block.
type frameLayout struct {
	header [2]int
	data   [2]int
}

var frameLayouts = map[int]frameLayout{
	10240: {header: [2]int{160, 320}, data: [2]int{320, 10240}}, // 80x62
	10080: {data: [2]int{160, 10080}},                            // 80x62, NO_HEADER
	39680: {header: [2]int{960, 1280}, data: [2]int{1280, 39680}}, // 160x120
	39360: {data: [2]int{960, 39360}},                            // 160x120, NO_HEADER
}

// parseGFRA returns the header words (nil in NO_HEADER mode) and the pixel
// words of a GFRA payload.
func parseGFRA(payload []byte) (header, data []uint16, err error) {
	layout, ok := frameLayouts[len(payload)]
	if !ok {
		return nil, nil, fmt.Errorf("%w: GFRA payload of %d bytes", ErrMalformed, len(payload))
	}
	if layout.header[1] > 0 {
		header = words(payload[layout.header[0]:layout.header[1]])
	}
	return header, words(payload[layout.data[0]:layout.data[1]]), nil
}

func words(b []byte) []uint16 {
	w := make([]uint16, len(b)/2)
	for i := range w {
		w[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return w
}

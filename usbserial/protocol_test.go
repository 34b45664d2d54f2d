package usbserial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	assert.Equal(t, "   #000ARREGB1XXXX", string(rregCommand(0xB1)))
	assert.Equal(t, "   #000CWREGB103XXXX", string(wregCommand(0xB1, 0x03)))
	assert.Equal(t, "   #000ERRSEB1CAFFXXXX", string(rrseCommand([]uint8{0xB1, 0xCA})))
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, uint16(0x01FD), checksum([]byte("0008WREG")))
	assert.Equal(t, "   #0008WREG01FD", string(ack(cmdWREG, nil)))

	cmd, payload, err := splitBody([]byte("0008"), []byte("WREG01FD"), true)
	require.NoError(t, err)
	assert.Equal(t, cmdWREG, cmd)
	assert.Empty(t, payload)

	_, _, err = splitBody([]byte("0008"), []byte("WREG01FE"), true)
	assert.ErrorIs(t, err, ErrChecksum)

	_, _, err = splitBody([]byte("0008"), []byte("WREGZZZZ"), true)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseAcks(t *testing.T) {
	v, err := parseRREG([]byte("2A"))
	require.NoError(t, err)
	assert.Equal(t, uint8(0x2A), v)

	_, err = parseRREG([]byte("2"))
	assert.ErrorIs(t, err, ErrMalformed)

	assert.NoError(t, parseWREG(nil))
	assert.ErrorIs(t, parseWREG([]byte("00")), ErrMalformed)

	vals, err := parseRRSE([]byte("B102CA5F"))
	require.NoError(t, err)
	assert.Equal(t, map[uint8]uint8{0xB1: 0x02, 0xCA: 0x5F}, vals)

	_, err = parseRRSE([]byte("B10"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseGFRA(t *testing.T) {
	header, data, err := parseGFRA(gfraPayload())
	require.NoError(t, err)
	require.Len(t, header, 80)
	require.Len(t, data, 4960)
	assert.Equal(t, uint16(1000), header[0])
	assert.Equal(t, uint16(4959), data[4959])

	header, data, err = parseGFRA(make([]byte, 39360))
	require.NoError(t, err)
	assert.Nil(t, header)
	assert.Len(t, data, 19200)

	_, _, err = parseGFRA(make([]byte, 100))
	assert.ErrorIs(t, err, ErrMalformed)
}

package verify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/poolkit/internal/format"
)

func TestLedger_Valid(t *testing.T) {
	tests := []struct {
		name  string
		build func(b []byte)
	}{
		{"empty pool", func([]byte) {}},
		{"one live block", func(b []byte) {
			format.PutHeader(b, 0, format.Header{Length: 16, Extent: 16})
		}},
		{"free block keeps extent", func(b []byte) {
			format.PutHeader(b, 0, format.Header{Length: 0, Extent: 16})
			format.PutHeader(b, 24, format.Header{Length: 8, Extent: 8})
		}},
		{"reused block with slack", func(b []byte) {
			format.PutHeader(b, 0, format.Header{Length: 4, Extent: 16})
			b[format.HeaderSize+10] = 0xAA // stale payload byte
		}},
		{"pool exactly full", func(b []byte) {
			format.PutHeader(b, 0, format.Header{Length: 56, Extent: 56})
		}},
		{"short tail", func(b []byte) {
			format.PutHeader(b, 0, format.Header{Length: 52, Extent: 52})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := make([]byte, 64)
			tt.build(b)
			require.NoError(t, Ledger(b))
		})
	}
}

func TestLedger_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		build    func(b []byte)
		wantType string
		wantOff  int
	}{
		{"length exceeds extent", func(b []byte) {
			format.PutHeader(b, 0, format.Header{Length: 20, Extent: 16})
		}, "BlockLength", 0},
		{"block overruns pool", func(b []byte) {
			format.PutHeader(b, 0, format.Header{Length: 8, Extent: 8})
			format.PutHeader(b, 16, format.Header{Length: 100, Extent: 100})
		}, "BlockBounds", 16},
		{"tail header has length", func(b []byte) {
			format.PutHeader(b, 0, format.Header{Length: 8, Extent: 8})
			format.PutHeader(b, 16, format.Header{Length: 3, Extent: 0})
		}, "Tail", 16},
		{"dirty tail byte", func(b []byte) {
			format.PutHeader(b, 0, format.Header{Length: 8, Extent: 8})
			b[40] = 1
		}, "Tail", 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := make([]byte, 64)
			tt.build(b)

			err := Ledger(b)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
			require.Equal(t, tt.wantType, verr.Type)
			require.Equal(t, tt.wantOff, verr.Offset)
		})
	}
}

func TestValidationError_Format(t *testing.T) {
	err := &ValidationError{Type: "Tail", Message: "boom", Offset: 0x10}
	require.Equal(t, "Tail at offset 0x10: boom", err.Error())

	err = &ValidationError{Type: "Tail", Message: "boom", Offset: -1}
	require.Equal(t, "Tail: boom", err.Error())
}

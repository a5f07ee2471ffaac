package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    OrderStatus
		wantErr bool
	}{
		{name: "exact label", input: "PENDENTE", want: StatusPendente},
		{name: "lower case", input: "em_preparo", want: StatusEmPreparo},
		{name: "mixed case", input: "EnTrEgUe", want: StatusEntregue},
		{name: "surrounding spaces", input: "  pronto ", want: StatusPronto},
		{name: "cancelled", input: "cancelado", want: StatusCancelado},
		{name: "unknown label", input: "boguS", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOrderStatus(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrderStatus_ErrorListsValidLabels(t *testing.T) {
	_, err := ParseOrderStatus("desconhecido")
	require.Error(t, err)
	for _, st := range OrderStatuses() {
		assert.Contains(t, err.Error(), string(st))
	}
}

func TestParseTamanho(t *testing.T) {
	got, err := ParseTamanho("grande")
	require.NoError(t, err)
	assert.Equal(t, TamanhoGrande, got)

	_, err = ParseTamanho("FAMILIA")
	assert.ErrorIs(t, err, ErrValidation)
}

package terminal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirmAcceptsSAndSim(t *testing.T) {
	cases := []struct {
		answer string
		want   bool
	}{
		{"s", true},
		{"S", true},
		{"sim", true},
		{"Sim", true},
		{"n", false},
		{"nao", false},
		{"", false},
		{"qualquer coisa", false},
	}
	for _, tc := range cases {
		var out strings.Builder
		c := NewConsole(strings.NewReader(tc.answer+"\n"), &out)
		got := c.Confirm("Finalizar Venda", "Finalizar venda no valor de R$ 106,00?")
		assert.Equal(t, tc.want, got, "answer %q", tc.answer)
		assert.Contains(t, out.String(), "Finalizar venda no valor de R$ 106,00?")
	}
}

func TestConfirmCancelsOnEOF(t *testing.T) {
	var out strings.Builder
	c := NewConsole(strings.NewReader(""), &out)
	assert.False(t, c.Confirm("Limpar Venda", "Tem certeza?"))
}

func TestNotices(t *testing.T) {
	var out strings.Builder
	c := NewConsole(strings.NewReader(""), &out)
	c.Success("Produto adicionado com sucesso!")
	c.Error("Erro ao adicionar produto")
	assert.Contains(t, out.String(), "[OK] Produto adicionado com sucesso!")
	assert.Contains(t, out.String(), "[ERRO] Erro ao adicionar produto")
}

func TestParseAmountAcceptsComma(t *testing.T) {
	d, err := parseAmount("45,50")
	assert.NoError(t, err)
	assert.Equal(t, "45.5", d.String())

	d, err = parseAmount(" 2 ")
	assert.NoError(t, err)
	assert.Equal(t, "2", d.String())

	_, err = parseAmount("abc")
	assert.Error(t, err)
}

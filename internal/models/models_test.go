package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBreed(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "golden retriever", "Golden Retriever"},
		{"uppercase", "GOLDEN RETRIEVER", "Golden Retriever"},
		{"mixed case", "gOLDEN rETRIEVER", "Golden Retriever"},
		{"surrounding whitespace", "  poodle  ", "Poodle"},
		{"already normalized", "French Bulldog", "French Bulldog"},
		{"empty", "", ""},
		{"only whitespace", "   ", ""},
		{"single word", "husky", "Husky"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeBreed(tt.in))
		})
	}
}

// Breed normalization runs on every request (nav filter plus query params),
// so concurrent calls must be safe. Run under -race.
func TestNormalizeBreedConcurrent(t *testing.T) {
	inputs := []string{"golden retriever", " POODLE ", "french bulldog", "husky"}
	want := []string{"Golden Retriever", "Poodle", "French Bulldog", "Husky"}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				n := (g + i) % len(inputs)
				assert.Equal(t, want[n], NormalizeBreed(inputs[n]))
			}
		}(g)
	}
	wg.Wait()
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{OrderPending, OrderProcessing, OrderCompleted, OrderCancelled} {
		assert.True(t, ValidOrderStatus(s), s)
	}
	assert.False(t, ValidOrderStatus("shipped"))
	assert.False(t, ValidOrderStatus("Pending"))
	assert.False(t, ValidOrderStatus(""))
}

func TestValidPaymentStatus(t *testing.T) {
	for _, s := range []string{PaymentPending, PaymentPaid, PaymentRefunded} {
		assert.True(t, ValidPaymentStatus(s), s)
	}
	assert.False(t, ValidPaymentStatus("failed"))
	assert.False(t, ValidPaymentStatus("Paid"))
	assert.False(t, ValidPaymentStatus(""))
}

package usecases

// PORTS definem o que os casos de uso precisam de fora

// RNG abstrai a fonte aleatória pra os sorteios serem reproduzíveis nos testes.
// *rand.Rand de math/rand/v2 satisfaz.
type RNG interface {
	// IntN retorna um valor em [0, n)
	IntN(n int) int
	// Float64 retorna um valor em [0, 1)
	Float64() float64
}

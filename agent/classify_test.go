package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCrypto(t *testing.T) {
	tasks := []string{
		"Research Bitcoin Price",
		"what is btc worth",
		"CRYPTO market overview",
		"bitcoin!!!",
	}

	for _, task := range tasks {
		parsed, err := Classify(task)
		require.NoError(t, err, task)
		assert.Equal(t, CategoryCrypto, parsed.Category, task)
		assert.Equal(t, "bitcoin", parsed.Query, task)
		assert.Equal(t, task, parsed.Topic, task)
	}
}

func TestClassifyNews(t *testing.T) {
	parsed, err := Classify("Latest news about AI")
	require.NoError(t, err)
	assert.Equal(t, CategoryNews, parsed.Category)
	// News keeps the original text as the query.
	assert.Equal(t, "Latest news about AI", parsed.Query)
	assert.Equal(t, "Latest news about AI", parsed.Topic)

	parsed, err = Classify("find me an article on rockets")
	require.NoError(t, err)
	assert.Equal(t, CategoryNews, parsed.Category)
}

func TestClassifyGeneralFallback(t *testing.T) {
	parsed, err := Classify("What is machine learning?")
	require.NoError(t, err)
	assert.Equal(t, CategoryGeneral, parsed.Category)
	assert.Equal(t, "What is machine learning?", parsed.Query)
}

func TestClassifyPriorityOrder(t *testing.T) {
	// Crypto wins over news when both keyword sets match.
	parsed, err := Classify("bitcoin news today")
	require.NoError(t, err)
	assert.Equal(t, CategoryCrypto, parsed.Category)
	assert.Equal(t, "bitcoin", parsed.Query)
}

func TestClassifyEmptyTask(t *testing.T) {
	_, err := Classify("")
	require.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestClassifySpecialCharacters(t *testing.T) {
	parsed, err := Classify("\x00\n\t weird input \"quotes\" 😀")
	require.NoError(t, err)
	assert.Equal(t, CategoryGeneral, parsed.Category)
}

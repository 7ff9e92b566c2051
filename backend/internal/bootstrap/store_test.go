package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hivery/backend/pkg/config"
	apperrors "hivery/backend/pkg/errors"
)

func TestOpenStore_BadgerInMemory(t *testing.T) {
	st, err := OpenStore(context.Background(), &config.Config{
		StoreBackend:   config.BackendBadger,
		BadgerInMemory: true,
	})
	require.NoError(t, err)
	defer st.Close()

	c, err := st.CompanyByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	_, err := OpenStore(context.Background(), &config.Config{StoreBackend: "sqlite"})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeConfig))
}

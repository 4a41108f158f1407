package warehousing

import (
	"testing"

	"github.com/stockcraft/backend/internal/domain/shared"
	"github.com/stretchr/testify/require"
)

func requireDomainError(t *testing.T, err error) *shared.DomainError {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr
}

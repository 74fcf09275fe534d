package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u-1", "admin", pkgjwt.KindAccess, "tienda-test", 60)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok, pkgjwt.KindAccess)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "tienda-test", claims.Issuer)
}

func TestParse_TipoIncorrecto(t *testing.T) {
	refresh, err := pkgjwt.Generate(testSecret, "u-1", "cliente", pkgjwt.KindRefresh, "tienda-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, refresh, pkgjwt.KindAccess)
	assert.Error(t, err, "un refresh token no sirve como access token")
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u-1", "admin", pkgjwt.KindAccess, "tienda-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok, pkgjwt.KindAccess)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u-1", "admin", pkgjwt.KindAccess, "tienda-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", tok, pkgjwt.KindAccess)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "u-1", "admin", pkgjwt.KindAccess, "x", 1)
	assert.Error(t, err)
}

package telegram

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticAuth_ReturnsSuppliedValues(t *testing.T) {
	a := StaticAuth{PhoneNumber: "+1555000", LoginCode: "12345", TwoFactor: "hunter2"}
	ctx := context.Background()

	phone, err := a.Phone(ctx)
	require.NoError(t, err)
	assert.Equal(t, "+1555000", phone)

	code, err := a.Code(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "12345", code)

	password, err := a.Password(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", password)
}

func TestStaticAuth_MissingValues(t *testing.T) {
	a := StaticAuth{}
	ctx := context.Background()

	_, err := a.Phone(ctx)
	require.Error(t, err)
	_, err = a.Code(ctx, nil)
	require.Error(t, err)
	_, err = a.Password(ctx)
	require.Error(t, err)
}

func TestStaticAuth_SignUpRejected(t *testing.T) {
	_, err := StaticAuth{}.SignUp(context.Background())
	require.Error(t, err)
}

func TestConsoleAuth_PromptsAndTrims(t *testing.T) {
	var out bytes.Buffer
	a := &ConsoleAuth{
		in:  bufio.NewReader(strings.NewReader("  +1555000  \n12345\n")),
		out: &out,
	}
	ctx := context.Background()

	phone, err := a.Phone(ctx)
	require.NoError(t, err)
	assert.Equal(t, "+1555000", phone)

	code, err := a.Code(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "12345", code)

	assert.Contains(t, out.String(), "Phone number:")
	assert.Contains(t, out.String(), "Login code:")
}

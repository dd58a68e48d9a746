package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goerrors "github.com/tijarah-io/tijarah/pkg/errors"
)

type staticTokens string

func (s staticTokens) Token(context.Context) (string, error) {
	return string(s), nil
}

func serve(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, WithTokenSource(staticTokens("tok-123")))
}

func TestDoSuccessOnBodyStatus200(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":200,"data":{"id":1},"message":"ok"}`))
	})

	res := c.Get(context.Background(), "/customers", nil)
	assert.True(t, res.Success)
	assert.Equal(t, 200, res.Status)
	assert.Equal(t, "ok", res.Message)
	assert.False(t, res.NetworkError)

	payload, err := DecodeData[struct {
		ID int `json:"id"`
	}](res)
	require.NoError(t, err)
	assert.Equal(t, 1, payload.ID)
}

// The body-level status is authoritative; a numeric string counts too.
func TestDoLooseStatusEquality(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"200","data":null,"message":"ok"}`))
	})

	res := c.Get(context.Background(), "/x", nil)
	assert.True(t, res.Success)
	assert.Equal(t, 200, res.Status)
}

// Transport status does not decide success in either direction.
func TestDoBodyStatusOverridesTransport(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":200,"message":"ok"}`))
	})
	res := c.Get(context.Background(), "/x", nil)
	assert.True(t, res.Success)

	c = serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":422,"message":"bad"}`))
	})
	res = c.Get(context.Background(), "/x", nil)
	assert.False(t, res.Success)
}

func TestDoBusinessFailureCarriesFieldErrors(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":422,"message":"bad","errors":{"email":"x"}}`))
	})

	res := c.Post(context.Background(), "/register", map[string]string{})
	assert.False(t, res.Success)
	assert.Equal(t, "bad", res.Message)
	assert.Equal(t, map[string]string{"email": "x"}, res.Errors)
	assert.False(t, res.NetworkError)

	err := res.Err()
	require.NotNil(t, err)
	assert.Equal(t, goerrors.CategoryBusiness, err.Category())
	assert.Equal(t, "bad", err.MessageEN)
	assert.Equal(t, map[string]string{"email": "x"}, err.Fields)
}

func TestDoFailureWithoutMessageGetsFallback(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":500}`))
	})

	res := c.Get(context.Background(), "/x", nil)
	assert.False(t, res.Success)
	assert.Equal(t, "An error occurred", res.Message)
}

// Errors maps with array values normalize to the first message.
func TestFieldMessagesAcceptArrays(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":422,"message":"bad","errors":{"name":["first","second"]}}`))
	})

	res := c.Post(context.Background(), "/x", nil)
	assert.Equal(t, map[string]string{"name": "first"}, res.Errors)
}

func TestDoNetworkErrorOnUnreachableServer(t *testing.T) {
	c := New("http://127.0.0.1:1") // nothing listens here

	res := c.Get(context.Background(), "/x", nil)
	assert.False(t, res.Success)
	assert.True(t, res.NetworkError)
	assert.NotEmpty(t, res.Message)
	assert.Equal(t, goerrors.CategoryNetwork, res.Err().Category())
}

func TestDoNetworkErrorOnMalformedJSON(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`))
	})

	res := c.Get(context.Background(), "/x", nil)
	assert.True(t, res.NetworkError)
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"status":200}`))
	})

	c.Post(context.Background(), "/customers", map[string]string{"name": "Acme"})

	assert.Equal(t, "Bearer tok-123", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestUnauthenticatedRequestOmitsBearer(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"status":200}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, WithTokenSource(staticTokens("tok")))
	c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/login"})

	assert.Empty(t, got.Get("Authorization"))
}

func TestMultipartRequest(t *testing.T) {
	var contentType, name, receipt string
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		name = r.FormValue("name")
		file, _, err := r.FormFile("receipt")
		require.NoError(t, err)
		defer file.Close()
		buf := make([]byte, 16)
		n, _ := file.Read(buf)
		receipt = string(buf[:n])
		w.Write([]byte(`{"status":200}`))
	})

	form := NewForm().
		Field("name", "Office rent").
		File("receipt", "receipt.jpg", strings.NewReader("jpegbytes"))

	res := c.PostForm(context.Background(), "/expenses", form)
	assert.True(t, res.Success)
	assert.True(t, strings.HasPrefix(contentType, "multipart/form-data"))
	assert.Equal(t, "Office rent", name)
	assert.Equal(t, "jpegbytes", receipt)
}

func TestPageHasMore(t *testing.T) {
	next := "http://api/customers?page=2"
	assert.True(t, Page[int]{NextPageURL: &next}.HasMore())
	assert.False(t, Page[int]{NextPageURL: nil}.HasMore())
	empty := ""
	assert.False(t, Page[int]{NextPageURL: &empty}.HasMore())
}

package jsonx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestSerializer(t *testing.T) {
	e := echo.New()
	e.JSONSerializer = Serializer{}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id":1,"name":"Dune"}`))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *item
	require.NoError(t, Serializer{}.Deserialize(c, &got))
	require.Equal(t, &item{ID: 1, Name: "Dune"}, got)

	require.NoError(t, c.JSON(http.StatusOK, got))
	require.Equal(t, `{"id":1,"name":"Dune"}`+"\n", rec.Body.String())
}

func TestSerializer_Malformed(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id":`))
	c := e.NewContext(req, httptest.NewRecorder())

	var got item
	err := Serializer{}.Deserialize(c, &got)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestSerializer_Null(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`null`))
	c := e.NewContext(req, httptest.NewRecorder())

	got := &item{}
	require.NoError(t, Serializer{}.Deserialize(c, &got))
	require.Nil(t, got)
}

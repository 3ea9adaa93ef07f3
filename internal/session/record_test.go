package session_test

import (
	"testing"

	"itgirls-web/internal/model"
	"itgirls-web/internal/session"

	"github.com/stretchr/testify/require"
)

func TestParseRecord_Flat(t *testing.T) {
	rec := session.ParseRecord([]byte(`{"id":1,"name":"Ada","role":"EXPERT","token":"t","isMentor":true}`))
	require.NotNil(t, rec)
	require.Equal(t, model.ID("1"), rec.ID)
	require.Equal(t, "EXPERT", rec.Role)
	require.Equal(t, "t", rec.Token)
	require.True(t, rec.IsMentor)
}

func TestParseRecord_NestedUser(t *testing.T) {
	rec := session.ParseRecord([]byte(`{"token":"abc","user":{"id":"u-2","name":"Léa","role":"GIRL"}}`))
	require.NotNil(t, rec)
	require.Equal(t, model.ID("u-2"), rec.ID)
	require.Equal(t, "GIRL", rec.Role)
	require.Equal(t, "abc", rec.Token)
}

func TestParseRecord_Malformed(t *testing.T) {
	require.Nil(t, session.ParseRecord([]byte(`not json`)))
	require.Nil(t, session.ParseRecord([]byte(`[1,2]`)))
	require.Nil(t, session.ParseRecord([]byte(`{"id":`)))
	require.Nil(t, session.ParseRecord(nil))
}

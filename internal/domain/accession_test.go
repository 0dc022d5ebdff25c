package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestNewRequest_MissingFields(t *testing.T) {
	_, err := NewRequest(nil, nil, strp("db"), false)
	require.Error(t, err)
	require.Equal(t, ErrCodeMissingAccession, Code(err))

	_, err = NewRequest(strp("P12345"), nil, nil, false)
	require.Error(t, err)
	require.Equal(t, ErrCodeMissingDatabase, Code(err))
}

func TestNewRequest_EmptyStringsArePresent(t *testing.T) {
	// 空串不是缺失：不带数据库名的调用，以及空 accession 都应能构造成功。
	req, err := NewRequest(strp("P12345"), nil, strp(""), false)
	require.NoError(t, err)
	require.Equal(t, "", req.Database())

	req, err = NewRequest(strp(""), nil, strp("somedb"), false)
	require.NoError(t, err)
	require.Equal(t, "", req.Accession())
}

func TestNewRequest_CopiesVersion(t *testing.T) {
	v := "2"
	req, err := NewRequest(strp("P12345"), &v, strp("uniprot"), true)
	require.NoError(t, err)

	// 调用方事后修改原变量不应影响已构造的 Request。
	v = "9"
	got, ok := req.Version()
	require.True(t, ok)
	require.Equal(t, "2", got)
	require.True(t, req.Hybrid())
	require.Equal(t, "uniprot", req.Database())
}

func TestResult_Diagnostic(t *testing.T) {
	req, err := NewRequest(strp("gi|999|"), nil, strp("nr"), false)
	require.NoError(t, err)

	line := Result{Accession: "999|"}.Diagnostic(req)
	require.Equal(t, "INVALID\tgi|999|\tnull\tnr\tPARSED ->999|<-", line)
}

func TestCode_NonDomainError(t *testing.T) {
	require.Equal(t, "", Code(nil))
}

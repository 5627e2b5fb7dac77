package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div><h1>  Álit </h1><p>fyrri <b>hluti</b>
		seinni hluti</p></div>`,
	))
	require.NoError(t, err)

	require.Equal(t, "Álit", Text(doc.Find("h1")))
	require.Equal(t, "fyrri hluti seinni hluti", Text(doc.Find("p")))
	require.Equal(t, "", Text(doc.Find(".missing")))
}

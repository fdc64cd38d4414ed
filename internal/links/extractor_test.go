package links

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/linkresolve/internal/resolver"
)

const page = `<!DOCTYPE html>
<html>
<head>
	<link rel="stylesheet" href="css/site.css">
	<script src="//cdn.example.net/app.js"></script>
</head>
<body>
	<a href="amministrazione-trasparente">Trasparenza</a>
	<a href="javascript:void(0);">Stampa</a>
	<a href="#">Top</a>
	<a href="">Empty</a>
	<a href="/%zz">Broken</a>
	<a href="amministrazione-trasparente">Again</a>
	<img src="../img/logo.png">
	<map><area href="?l1=1"></map>
	<iframe src="https://maps.example.com/embed"></iframe>
</body>
</html>`

func TestExtract(t *testing.T) {
	e := New(resolver.Resolve)
	links, err := e.Extract(strings.NewReader(page), "https://www.comune.example.it/home/index.php")
	require.NoError(t, err)

	got := make([]string, len(links))
	for i, l := range links {
		got[i] = l.Tag + " " + l.Destination
	}
	assert.Equal(t, []string{
		"link https://www.comune.example.it/home/css/site.css",
		"script https://cdn.example.net/app.js",
		"a https://www.comune.example.it/home/amministrazione-trasparente",
		"a https://www.comune.example.it/home/index.php",
		"a https://www.comune.example.it/home/index.php#",
		"a ",
		"a https://www.comune.example.it/home/amministrazione-trasparente",
		"img https://www.comune.example.it/img/logo.png",
		"area https://www.comune.example.it/home/index.php?l1=1",
		"iframe https://maps.example.com/embed",
	}, got)

	assert.Equal(t, "src", links[1].Attr)
	assert.Equal(t, "/%zz", Unresolved(links)[0].Raw)
}

func TestExtract_BaseElement(t *testing.T) {
	doc := `<html><head><base href="/portale/"></head><body><a href="bandi">Bandi</a></body></html>`
	e := New(resolver.Resolve)

	links, err := e.Extract(strings.NewReader(doc), "https://ente.example.it/index.html")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "https://ente.example.it/portale/bandi", links[0].Destination)

	// Without a supplied base, an absolute <base> is enough.
	abs := `<html><head><base href="https://Ente.example.it/portale/"></head><body><a href="bandi">Bandi</a></body></html>`
	links, err = e.Extract(strings.NewReader(abs), "")
	require.NoError(t, err)
	assert.Equal(t, "https://ente.example.it/portale/bandi", links[0].Destination)
}

func TestUniqueAndDestinations(t *testing.T) {
	e := New(resolver.Resolve)
	links, err := e.Extract(strings.NewReader(page), "https://www.comune.example.it/home/index.php")
	require.NoError(t, err)

	unique := Unique(links)
	assert.Len(t, unique, len(links)-1)

	dests := Destinations(links)
	assert.Len(t, dests, 8)
	assert.NotContains(t, dests, "")
}

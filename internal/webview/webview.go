// Package webview — страница, встраивающая внешний URL в iframe.
package webview

import (
	"bytes"
	"html/template"
	"net/url"
	"strings"

	apperrors "github.com/vbncursed/vkr/wallet-service/internal/errors"
)

const LoadPath = "/api/v1/view/load"

var page = template.Must(template.New("view").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.URL}}</title>
<style>html,body,iframe{margin:0;padding:0;border:0;width:100%;height:100%;}</style>
</head>
<body>
<iframe id="frame" src="{{.URL}}" data-load="{{.LoadPath}}"></iframe>
<script>
var frame = document.getElementById("frame");
frame.addEventListener("load", function () {
  fetch(frame.dataset.load, {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify({url: frame.getAttribute("src")})
  });
});
</script>
</body>
</html>
`))

// Validate принимает только абсолютные http(s) URL
func Validate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperrors.MissingField("url")
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", apperrors.InvalidField("url", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", apperrors.InvalidField("url", raw)
	}
	return u.String(), nil
}

// Render — HTML-страница для проверенного URL
func Render(raw string) ([]byte, error) {
	target, err := Validate(raw)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := page.Execute(&buf, struct {
		URL      string
		LoadPath string
	}{URL: target, LoadPath: LoadPath}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

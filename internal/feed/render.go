package feed

import (
	"bytes"
	"html/template"
	"net/url"
	"strings"
)

// EmptyPlaceholder is shown as the only item when a topic has no posts.
const EmptyPlaceholder = "No threads found"

var itemsTemplate = template.Must(template.New("items").Parse(
	`{{range .}}<li class="thread"><a href="{{.Link}}" target="_blank" rel="noopener noreferrer">{{.Title}}</a> <span class="author">by u/{{.Author}}</span></li>
{{else}}<li class="empty">` + EmptyPlaceholder + `</li>
{{end}}`))

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>r/{{.Topic}}</title>
</head>
<body>
<h1>r/{{.Topic}}</h1>
<ul id="threads">
{{.Items}}</ul>
</body>
</html>
`))

type renderedPost struct {
	Title  string
	Author string
	Link   string
}

// RenderItems renders one <li> per post, or the placeholder item when posts
// is empty. Permalinks are resolved against linkBase.
func RenderItems(linkBase string, posts []Post) (template.HTML, error) {
	items := make([]renderedPost, 0, len(posts))
	for _, p := range posts {
		items = append(items, renderedPost{
			Title:  p.Title,
			Author: p.Author,
			Link:   postLink(linkBase, p.Permalink),
		})
	}

	var buf bytes.Buffer
	if err := itemsTemplate.Execute(&buf, items); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// RenderPage wraps rendered items in a complete HTML document.
func RenderPage(topic string, items template.HTML) ([]byte, error) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Topic string
		Items template.HTML
	}{Topic: topic, Items: items})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func postLink(base, permalink string) string {
	if u, err := url.Parse(permalink); err == nil && u.IsAbs() {
		return u.String()
	}
	if !strings.HasPrefix(permalink, "/") {
		permalink = "/" + permalink
	}
	return strings.TrimRight(base, "/") + permalink
}

package http

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// PageView renders a public CMS page with its gallery and the site navigation.
// Page content is editor-authored HTML and is written unescaped.
func PageView(detail PageDetailResponse) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>")
		b.WriteString(templ.EscapeString(detail.Page.Title))
		b.WriteString("</title>\n</head>\n<body>\n")
		writeNavigation(&b, detail.Navigation, detail.Page.Slug)
		b.WriteString("<main>\n<h1>")
		b.WriteString(templ.EscapeString(detail.Page.Title))
		b.WriteString("</h1>\n<article>")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := templ.Raw(detail.Page.Content).Render(ctx, w); err != nil {
			return err
		}

		b.Reset()
		b.WriteString("</article>\n")
		writeGallery(&b, detail.Gallery)
		b.WriteString("</main>\n</body>\n</html>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// NotFoundView is served for unknown slugs.
func NotFoundView(navigation []NavigationLinkDTO) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>Page not found</title>\n</head>\n<body>\n")
		writeNavigation(&b, navigation, "")
		b.WriteString("<main>\n<h1>Page not found</h1>\n</main>\n</body>\n</html>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeNavigation(b *strings.Builder, links []NavigationLinkDTO, currentSlug string) {
	if len(links) == 0 {
		return
	}
	b.WriteString("<nav>\n<ul>\n")
	for _, link := range links {
		b.WriteString("<li><a href=\"")
		b.WriteString(templ.EscapeString(string(templ.URL(link.URL))))
		b.WriteString("\"")
		if link.Slug == currentSlug {
			b.WriteString(" aria-current=\"page\"")
		}
		b.WriteString(">")
		b.WriteString(templ.EscapeString(link.Title))
		b.WriteString("</a></li>\n")
	}
	b.WriteString("</ul>\n</nav>\n")
}

func writeGallery(b *strings.Builder, items []GalleryItemDTO) {
	if len(items) == 0 {
		return
	}
	b.WriteString("<section class=\"gallery\">\n")
	for _, item := range items {
		b.WriteString("<figure>")
		if isImage(item.MediaURL) {
			b.WriteString("<img src=\"")
			b.WriteString(templ.EscapeString(string(templ.URL(item.MediaURL))))
			b.WriteString("\" alt=\"")
			b.WriteString(templ.EscapeString(item.Caption))
			b.WriteString("\">")
		} else {
			b.WriteString("<a href=\"")
			b.WriteString(templ.EscapeString(string(templ.URL(item.MediaURL))))
			b.WriteString("\">")
			b.WriteString(templ.EscapeString(item.Display))
			b.WriteString("</a>")
		}
		if item.Caption != "" {
			b.WriteString("<figcaption>")
			b.WriteString(templ.EscapeString(item.Caption))
			b.WriteString("</figcaption>")
		}
		b.WriteString("</figure>\n")
	}
	b.WriteString("</section>\n")
}

func isImage(url string) bool {
	lower := strings.ToLower(url)
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

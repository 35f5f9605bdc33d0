package article_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/okian/rootsroads/internal/domain/article"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultTable(t *testing.T) {
	Convey("Given the embedded article table", t, func() {
		tbl, err := article.Default()
		So(err, ShouldBeNil)

		Convey("Then articles are listed in declared order", func() {
			list := tbl.List()
			So(tbl.Len(), ShouldEqual, 4)
			So(list[0].ID, ShouldEqual, "first-winter")
			So(list[2].PDF, ShouldBeTrue)
			So(list[2].Author, ShouldEqual, "Roots & Roads Team")
		})

		Convey("Then lookup by id works and unknown ids fail", func() {
			a, err := tbl.Get("culture-shock")
			So(err, ShouldBeNil)
			So(a.Initial, ShouldEqual, "D")
			So(a.ReadTime, ShouldEqual, "5 min read")

			_, err = tbl.Get("missing")
			So(errors.Is(err, article.ErrNotFound), ShouldBeTrue)
		})

		Convey("Then every article has a body with text", func() {
			for _, a := range tbl.List() {
				So(a.WordCount(), ShouldBeGreaterThan, 20)
				So(a.Title, ShouldNotBeBlank)
			}
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given a YAML table", t, func() {
		Convey("When an initial is missing it is derived from the author", func() {
			tbl, err := article.Parse([]byte("- id: a\n  author: Žanar\n  body: <p>x</p>\n"))
			So(err, ShouldBeNil)
			a, _ := tbl.Get("a")
			So(a.Initial, ShouldEqual, "Ž")
		})

		Convey("When ids repeat it is rejected", func() {
			_, err := article.Parse([]byte("- id: a\n- id: a\n"))
			So(err, ShouldNotBeNil)
		})

		Convey("When an id is missing it is rejected", func() {
			_, err := article.Parse([]byte("- title: no id\n"))
			So(err, ShouldNotBeNil)
		})

		Convey("When the YAML is malformed it is rejected", func() {
			_, err := article.Parse([]byte("- id: [unterminated\n"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestBodyText(t *testing.T) {
	Convey("Given an HTML body", t, func() {
		a := article.Article{Body: "<h2>Start</h2><p>One &amp; two<br/>three</p>\n<ul><li>four</li></ul>"}

		Convey("Then markup is stripped and entities decoded", func() {
			So(a.Text(), ShouldEqual, "Start One & two three four")
			So(a.WordCount(), ShouldEqual, 6)
		})

		Convey("Then excerpts are cut with an ellipsis", func() {
			So(a.Excerpt(9), ShouldEqual, "Start One...")
			So(a.Excerpt(100), ShouldEqual, a.Text())
		})

		Convey("Then the summary carries the excerpt and word count", func() {
			a.ID, a.Title = "x", "Title"
			want := article.Summary{ID: "x", Title: "Title", Excerpt: a.Text(), Words: 6}
			So(cmp.Diff(want, a.Summarize()), ShouldBeEmpty)
		})
	})

	Convey("Given a long body", t, func() {
		a := article.Article{Body: "<p>" + strings.Repeat("word ", 100) + "</p>"}
		So(strings.HasSuffix(a.Summarize().Excerpt, "..."), ShouldBeTrue)
	})
}

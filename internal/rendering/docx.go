package rendering

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// A4 in twentieths of a point, margins 0.5in vertical and 0.4in horizontal
const (
	pageWidthTwips  = 11906
	pageHeightTwips = 16838
	marginTopTwips  = 720
	marginSideTwips = 576
)

// docxBlocks selects the HTML elements that become DOCX paragraphs
const docxBlocks = "h1, h2, p, li, div.contact, div.entry-head"

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Arial" w:hAnsi="Arial" w:cs="Arial"/><w:sz w:val="21"/></w:rPr></w:rPrDefault><w:pPrDefault><w:pPr><w:spacing w:after="60"/></w:pPr></w:pPrDefault></w:docDefaults>
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:pPr><w:jc w:val="center"/></w:pPr><w:rPr><w:b/><w:sz w:val="40"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Contact"><w:name w:val="Contact"/><w:basedOn w:val="Normal"/><w:pPr><w:jc w:val="center"/><w:spacing w:after="200"/></w:pPr><w:rPr><w:sz w:val="19"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:pPr><w:keepNext/><w:spacing w:before="240" w:after="80"/><w:pBdr><w:bottom w:val="single" w:sz="6" w:space="1" w:color="000000"/></w:pBdr></w:pPr><w:rPr><w:b/><w:caps/><w:sz w:val="23"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="EntryHead"><w:name w:val="Entry Head"/><w:basedOn w:val="Normal"/><w:pPr><w:keepNext/><w:spacing w:before="120"/></w:pPr></w:style>
<w:style w:type="paragraph" w:styleId="ListParagraph"><w:name w:val="List Paragraph"/><w:basedOn w:val="Normal"/><w:pPr><w:ind w:left="360" w:hanging="220"/></w:pPr></w:style>
</w:styles>`

type wDocument struct {
	XMLName xml.Name `xml:"w:document"`
	NS      string   `xml:"xmlns:w,attr"`
	Body    wBody    `xml:"w:body"`
}

type wBody struct {
	Paragraphs []wParagraph `xml:"w:p"`
	Section    wSection     `xml:"w:sectPr"`
}

type wParagraph struct {
	Props *wParagraphProps `xml:"w:pPr,omitempty"`
	Runs  []wRun           `xml:"w:r"`
}

type wParagraphProps struct {
	Style wVal `xml:"w:pStyle"`
}

type wVal struct {
	Val string `xml:"w:val,attr"`
}

type wRun struct {
	Props *wRunProps `xml:"w:rPr,omitempty"`
	Text  wText      `xml:"w:t"`
}

type wRunProps struct {
	Bold *struct{} `xml:"w:b,omitempty"`
}

type wText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type wSection struct {
	Size    wPageSize    `xml:"w:pgSz"`
	Margins wPageMargins `xml:"w:pgMar"`
}

type wPageSize struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type wPageMargins struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
}

// ToDOCX converts formatted resume HTML into a WordprocessingML package.
// Headings, the contact line, entry titles, paragraphs and list items become
// paragraphs; <strong> and <b> become bold runs.
func ToDOCX(html string) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &RenderError{Format: "docx", Message: "failed to parse HTML", Cause: err}
	}

	body := wBody{
		Section: wSection{
			Size:    wPageSize{W: pageWidthTwips, H: pageHeightTwips},
			Margins: wPageMargins{Top: marginTopTwips, Right: marginSideTwips, Bottom: marginTopTwips, Left: marginSideTwips},
		},
	}
	doc.Find(docxBlocks).Each(func(_ int, sel *goquery.Selection) {
		if p, ok := docxParagraph(sel); ok {
			body.Paragraphs = append(body.Paragraphs, p)
		}
	})

	documentXML, err := xml.Marshal(wDocument{NS: wordNamespace, Body: body})
	if err != nil {
		return nil, &RenderError{Format: "docx", Message: "failed to encode document.xml", Cause: err}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/document.xml", append([]byte(xml.Header), documentXML...)},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, &RenderError{Format: "docx", Message: "failed to create " + part.name, Cause: err}
		}
		if _, err := w.Write(part.content); err != nil {
			return nil, &RenderError{Format: "docx", Message: "failed to write " + part.name, Cause: err}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &RenderError{Format: "docx", Message: "failed to finalize DOCX archive", Cause: err}
	}
	return buf.Bytes(), nil
}

func docxParagraph(sel *goquery.Selection) (wParagraph, bool) {
	var style, prefix string
	switch {
	case sel.Is("h1"):
		style = "Title"
	case sel.Is("h2"):
		style = "Heading1"
	case sel.Is("li"):
		style, prefix = "ListParagraph", "• "
	case sel.HasClass("contact"):
		style = "Contact"
	case sel.HasClass("entry-head"):
		style = "EntryHead"
	}

	var runs []wRun
	if prefix != "" {
		runs = append(runs, newRun(prefix, false))
	}
	collectRuns(sel, false, &runs)
	if len(runs) == 0 || strings.TrimSpace(sel.Text()) == "" {
		return wParagraph{}, false
	}

	p := wParagraph{Runs: runs}
	if style != "" {
		p.Props = &wParagraphProps{Style: wVal{Val: style}}
	}
	return p, true
}

func collectRuns(sel *goquery.Selection, bold bool, runs *[]wRun) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		name := goquery.NodeName(child)
		switch {
		case name == "#text":
			text := strings.Join(strings.Fields(child.Text()), " ")
			if raw := child.Text(); text != "" {
				if strings.HasPrefix(raw, " ") {
					text = " " + text
				}
				if strings.HasSuffix(raw, " ") {
					text += " "
				}
				*runs = append(*runs, newRun(text, bold))
			}
		case child.HasClass("meta"):
			*runs = append(*runs, newRun(" | ", false))
			collectRuns(child, bold, runs)
		default:
			collectRuns(child, bold || name == "strong" || name == "b", runs)
		}
	})
}

func newRun(text string, bold bool) wRun {
	r := wRun{Text: wText{Value: text}}
	if strings.TrimSpace(text) != text {
		r.Text.Space = "preserve"
	}
	if bold {
		r.Props = &wRunProps{Bold: &struct{}{}}
	}
	return r
}

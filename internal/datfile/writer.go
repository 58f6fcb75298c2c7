package datfile

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"retool/internal/catalog"
	"retool/internal/textutil"
)

// Game is one output game element.
type Game struct {
	Name        string
	CloneOf     string
	Description string
	Category    string
	Region      string
	Roms        []catalog.Rom
}

// Document is a reduced dat ready to write.
type Document struct {
	Header catalog.Header
	// Count is the final title count shown in the header description.
	Count int
	Games []Game
}

const doctype = `<!DOCTYPE datafile PUBLIC "-//Logiqx//DTD ROM Management Datafile//EN" "http://www.logiqx.com/Dats/datafile.dtd">`

// Write renders doc as Logiqx XML.
func Write(w io.Writer, doc Document) error {
	bw := bufio.NewWriter(w)
	h := doc.Header
	bw.WriteString(xml.Header)
	bw.WriteString(doctype)
	bw.WriteString("\n<datafile>\n\t<header>\n")
	element(bw, 2, "name", h.Name)
	element(bw, 2, "description", fmt.Sprintf("%s (%s) (%s) [1G1R]", h.Name, FormatCount(doc.Count), h.Version))
	element(bw, 2, "version", h.Version)
	element(bw, 2, "date", h.Date)
	element(bw, 2, "author", h.Author)
	element(bw, 2, "homepage", h.Homepage)
	element(bw, 2, "url", h.URL)
	element(bw, 2, "comment", h.Comment)
	bw.WriteString("\t</header>\n")

	for _, g := range doc.Games {
		bw.WriteString("\t<game name=\"")
		bw.WriteString(escape(g.Name))
		if g.CloneOf != "" {
			bw.WriteString("\" cloneof=\"")
			bw.WriteString(escape(g.CloneOf))
		}
		bw.WriteString("\">\n")
		element(bw, 2, "category", g.Category)
		element(bw, 2, "description", g.Description)
		fmt.Fprintf(bw, "\t\t<release name=\"%s\" region=\"%s\"/>\n", escape(g.Description), escape(g.Region))
		for _, rom := range g.Roms {
			bw.WriteString("\t\t<rom")
			attr(bw, "crc", rom.CRC)
			attr(bw, "md5", rom.MD5)
			bw.WriteString(" name=\"")
			bw.WriteString(escape(rom.Name))
			bw.WriteString("\"")
			attr(bw, "sha1", rom.SHA1)
			bw.WriteString(" size=\"")
			bw.WriteString(strconv.FormatInt(rom.Size, 10))
			bw.WriteString("\"/>\n")
		}
		bw.WriteString("\t</game>\n")
	}
	bw.WriteString("</datafile>\n")
	return bw.Flush()
}

// WriteFile writes doc to path.
func WriteFile(path string, doc Document) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dat: %w", err)
	}
	if err := Write(file, doc); err != nil {
		_ = file.Close()
		return fmt.Errorf("write dat: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close dat: %w", err)
	}
	return nil
}

func element(bw *bufio.Writer, depth int, name, value string) {
	bw.WriteString(strings.Repeat("\t", depth))
	bw.WriteString("<" + name + ">")
	bw.WriteString(escape(value))
	bw.WriteString("</" + name + ">\n")
}

func attr(bw *bufio.Writer, name, value string) {
	if value == "" {
		return
	}
	bw.WriteString(" " + name + "=\"")
	bw.WriteString(escape(value))
	bw.WriteString("\"")
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(value string) string {
	return xmlEscaper.Replace(value)
}

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// OutputName builds the output file name for a reduced dat. options is the
// short option string such as " (-l -d)" and may be empty.
func OutputName(h catalog.Header, count int, options string, at time.Time) string {
	name := fmt.Sprintf("%s (%s) (%s) [1G1R]%s (retool %s).dat",
		h.Name, FormatCount(count), h.Version, options, at.Format("2006-01-02 15-04-05"))
	return textutil.SanitizeFileName(strings.TrimSuffix(name, ".dat")) + ".dat"
}

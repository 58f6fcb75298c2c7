package datfile

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"retool/internal/catalog"
)

type xmlDatafile struct {
	XMLName  xml.Name  `xml:"datafile"`
	Header   xmlHeader `xml:"header"`
	Games    []xmlGame `xml:"game"`
	Machines []xmlGame `xml:"machine"`
}

type xmlHeader struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
	Version     string `xml:"version"`
	Date        string `xml:"date"`
	Author      string `xml:"author"`
	Homepage    string `xml:"homepage"`
	URL         string `xml:"url"`
	Comment     string `xml:"comment"`
}

type xmlGame struct {
	Name        string       `xml:"name,attr"`
	CloneOf     string       `xml:"cloneof,attr"`
	Category    string       `xml:"category"`
	Description string       `xml:"description"`
	Releases    []xmlRelease `xml:"release"`
	Roms        []xmlRom     `xml:"rom"`
}

type xmlRelease struct {
	Name   string `xml:"name,attr"`
	Region string `xml:"region,attr"`
}

type xmlRom struct {
	Name string `xml:"name,attr"`
	Size string `xml:"size,attr"`
	CRC  string `xml:"crc,attr"`
	MD5  string `xml:"md5,attr"`
	SHA1 string `xml:"sha1,attr"`
}

// ReadFile parses the dat at path.
func ReadFile(ctx context.Context, path string) (catalog.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Catalog{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("open dat: %w", err)
	}
	defer file.Close()

	cat, err := Parse(file)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	cat.Source = path
	return cat, nil
}

// Parse decodes a Logiqx dat.
func Parse(r io.Reader) (catalog.Catalog, error) {
	var doc xmlDatafile
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return catalog.Catalog{}, fmt.Errorf("decode dat: %w", err)
	}
	cat := catalog.Catalog{
		Header: catalog.Header{
			Name:        strings.TrimSpace(doc.Header.Name),
			Description: strings.TrimSpace(doc.Header.Description),
			Version:     strings.TrimSpace(doc.Header.Version),
			Date:        strings.TrimSpace(doc.Header.Date),
			Author:      strings.TrimSpace(doc.Header.Author),
			Homepage:    strings.TrimSpace(doc.Header.Homepage),
			URL:         strings.TrimSpace(doc.Header.URL),
			Comment:     strings.TrimSpace(doc.Header.Comment),
		},
	}
	games := append(doc.Games, doc.Machines...)
	cat.Entries = make([]catalog.Entry, 0, len(games))
	for _, g := range games {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			continue
		}
		entry := catalog.Entry{
			Name:        name,
			Description: strings.TrimSpace(g.Description),
			Category:    strings.TrimSpace(g.Category),
		}
		if entry.Description == "" {
			entry.Description = name
		}
		if len(g.Releases) > 0 {
			entry.Region = strings.TrimSpace(g.Releases[0].Region)
		}
		for _, rom := range g.Roms {
			size, _ := strconv.ParseInt(strings.TrimSpace(rom.Size), 10, 64)
			entry.Roms = append(entry.Roms, catalog.Rom{
				Name: rom.Name,
				Size: size,
				CRC:  strings.TrimSpace(rom.CRC),
				MD5:  strings.TrimSpace(rom.MD5),
				SHA1: strings.TrimSpace(rom.SHA1),
			})
		}
		cat.Entries = append(cat.Entries, entry)
	}
	return cat, nil
}

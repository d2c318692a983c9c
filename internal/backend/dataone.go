package backend

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/ropensci/datahugger-go/internal/dherrors"
	"github.com/ropensci/datahugger-go/internal/entry"
	"github.com/ropensci/datahugger-go/internal/httpapi"
)

// dataoneBackend lists the data entities described by a DataOne EML
// metadata document, grounded on original_source/src/datasets/dataone.rs.
// The XML document is parsed into a generic node tree (mirroring the
// Rust original's use of xmltree::Element, which likewise loads the whole
// tree rather than decoding into fixed structs) since the EML schema
// varies across installations.
type dataoneBackend struct {
	id string
}

func init() {
	Register(Dataone, func(args map[string]string) Backend {
		return &dataoneBackend{id: args["id"]}
	})
}

func (b *dataoneBackend) RootURL(id string) string {
	return "https://cn.dataone.org/cn/v2/object/" + id
}

func (b *dataoneBackend) List(ctx context.Context, client *httpapi.Client, dir entry.DirMeta) ([]entry.Entry, error) {
	raw, err := client.GetBytes(ctx, dir.APIURL)
	if err != nil {
		return nil, err
	}

	root, err := parseXMLTree(raw)
	if err != nil {
		return nil, dherrors.NewRepoError("failed to parse XML", err)
	}

	dataset := root.child("dataset")
	if dataset == nil {
		return nil, nil
	}

	var entries []entry.Entry
	for _, child := range dataset.Children {
		if child.XMLName.Local != "otherEntity" && child.XMLName.Local != "dataTable" {
			continue
		}
		fm, err := b.fileMetaFrom(dir, child)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry.NewFileEntry(fm))
	}
	return entries, nil
}

func (b *dataoneBackend) fileMetaFrom(dir entry.DirMeta, elem *xmlNode) (entry.FileMeta, error) {
	physical := elem.child("physical")
	var downloadURL string
	if physical != nil {
		if dist := physical.child("distribution"); dist != nil {
			if online := dist.child("online"); online != nil {
				if u := online.child("url"); u != nil && u.attr("function") == "download" {
					downloadURL = u.text()
				}
			}
		}
	}
	if downloadURL == "" {
		return entry.FileMeta{}, dherrors.NewRepoError(
			fmt.Sprintf("not found download url at %s, through 'physical.distribution.online.url.function.download'", dir.APIURL), nil)
	}

	nameElem := elem.child("entityName")
	if nameElem == nil {
		return entry.FileMeta{}, dherrors.NewRepoError("name not found", nil)
	}
	name := nameElem.text()

	var size *uint64
	if physical != nil {
		if sizeElem := physical.child("size"); sizeElem != nil {
			s, err := strconv.ParseUint(strings.TrimSpace(sizeElem.text()), 10, 64)
			if err != nil {
				return entry.FileMeta{}, dherrors.NewRepoError(fmt.Sprintf("cannot parse file physical size, %v", err), err)
			}
			size = &s
		}
	}

	return entry.FileMeta{
		Path:        dir.Path.Join(name),
		DownloadURL: downloadURL,
		Size:        size,
		Endpoint: entry.Endpoint{
			ParentURL: dir.APIURL,
			Key:       "dataset.physical.distribution.online.url[@function='download']",
		},
	}, nil
}

// xmlNode is a generic, order-preserving XML element tree, the Go
// analogue of xmltree::Element.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Chardata string     `xml:",chardata"`
	Children []*xmlNode `xml:",any"`
}

func parseXMLTree(raw []byte) (*xmlNode, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	var node xmlNode
	if err := dec.Decode(&node); err != nil {
		return nil, err
	}
	return &node, nil
}

func (n *xmlNode) child(name string) *xmlNode {
	for _, c := range n.Children {
		if c.XMLName.Local == name {
			return c
		}
	}
	return nil
}

func (n *xmlNode) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (n *xmlNode) text() string {
	return strings.TrimSpace(n.Chardata)
}

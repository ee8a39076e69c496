package importapp

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Download formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Content types of the rendered templates
const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ImportTemplate describes one downloadable spreadsheet layout
type ImportTemplate struct {
	Type         string
	Name         string
	Headers      []string
	Example      []string
	Instructions []string
}

var importTemplates = map[string]ImportTemplate{
	"ingredients-master": {
		Name:    "Ingredient Master Template",
		Headers: []string{ColCategory, ColKoreanName, ColEnglishName, ColQuantity, ColUnit, ColYieldRate},
		Example: []string{"Oil", "식용유", "Cooking Oil", "18", "L", "100"},
		Instructions: []string{
			"Category: Oil, Raw chicken, Sauce, Powder, Dry goods, Food, Produced",
			"Unit: ml, g, L, kg, ea, pcs",
			"Yield Rate: 1-100 (percentage, default 100)",
		},
	},
	"ingredients-price": {
		Name:    "Ingredient Prices Template",
		Headers: []string{"Template Name", "Ingredient English Name", "Price", "Currency", "Notes"},
		Example: []string{"Canada", "Cooking Oil", "25.99", "CAD", "Costco bulk purchase"},
		Instructions: []string{
			"Template Name: Must match existing template (e.g., Canada, Mexico, Colombia)",
			"Ingredient: Must match existing master ingredient English name",
			"Currency: CAD, USD, MXN, COP, KRW, etc.",
		},
	},
	"menu-manual": {
		Name:    "Menu Manuals Template",
		Headers: []string{"Menu Name (EN)", "Menu Name (KR)", "Group Name", "Shelf Life", "Yield", "Yield Unit", "Selling Price", "Notes"},
		Example: []string{"Crispy Chicken", "크리스피 치킨", "Canada Menu", "2 hours", "10", "servings", "12.99", "Popular item"},
		Instructions: []string{
			"Group Name: Must match existing Manual Group name",
			"Shelf Life: Text format (e.g., \"2 hours\", \"1 day\")",
			"Yield Unit: servings, pieces, portions, kg, g, etc.",
		},
	},
	"manual-ingredients": {
		Name:    "Manual Ingredients Template",
		Headers: []string{"Manual Name (EN)", "Ingredient Name (EN)", "Ingredient Name (KR)", "Quantity", "Unit", "Section", "Sort Order", "Notes"},
		Example: []string{"Crispy Chicken", "Chicken Breast", "닭가슴살", "200", "g", "MAIN", "1", ""},
		Instructions: []string{
			"Manual Name: Must match existing Menu Manual English name",
			"Section: MAIN, SAUCE, GARNISH, SIDE, TOPPING",
			"Unit: g, ml, ea, pcs, kg, L, tbsp, tsp",
			"Sort Order: Number for ordering ingredients in recipe",
		},
	},
	"vendors": {
		Name:    "Vendors Template",
		Headers: []string{"Vendor Name", "Category", "Country", "City", "Address", "Phone", "Email", "Website", "Notes"},
		Example: []string{"Sysco Foods", "Food", "CA", "Toronto", "123 Main St", "+1-416-555-0100", "orders@sysco.ca", "www.sysco.ca", "Main food supplier"},
		Instructions: []string{
			"Category: Equipment, Food, Construction, Service, Packaging, Other",
			"Country: 2-letter country code (CA, US, MX, CO, KR)",
			"Phone: Include country code",
		},
	},
	"grocery-prices": {
		Name:    "Grocery Prices Template",
		Headers: []string{"Ingredient Name (EN)", "Country", "Retailer", "Package Size", "Package Unit", "Package Price", "Currency", "Tax Included", "Source URL", "Notes"},
		Example: []string{"Chicken Breast", "CA", "Costco", "5", "kg", "35.99", "CAD", "Yes", "https://costco.ca/...", "Bulk pack"},
		Instructions: []string{
			"Ingredient: Must match existing ingredient English name",
			"Package Unit: g, kg, ml, L, ea, pcs",
			"Tax Included: Yes or No",
			"Source URL: Optional link to price source",
		},
	},
}

// TemplateTypes lists the known template types in a stable order
func TemplateTypes() []string {
	types := make([]string, 0, len(importTemplates))
	for t := range importTemplates {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// LookupTemplate returns the template for a type
func LookupTemplate(templateType string) (ImportTemplate, bool) {
	tpl, ok := importTemplates[templateType]
	tpl.Type = templateType
	return tpl, ok
}

// RenderedTemplate is a file ready to be served
type RenderedTemplate struct {
	FileName    string
	ContentType string
	Body        []byte
}

// Render produces the file for the requested format. Any format other than
// xlsx falls back to CSV.
func (t ImportTemplate) Render(format string) RenderedTemplate {
	if format == FormatXLSX {
		return RenderedTemplate{
			FileName:    t.Type + "-template.xlsx",
			ContentType: ContentTypeXLSX,
			Body:        t.SpreadsheetML(),
		}
	}
	return RenderedTemplate{
		FileName:    t.Type + "-template.csv",
		ContentType: ContentTypeCSV,
		Body:        t.CSV(),
	}
}

// CSV renders a BOM-prefixed CSV with the instructions as '#' comments, the
// header, the example row and five blank rows.
func (t ImportTemplate) CSV() []byte {
	lines := []string{
		"# " + t.Name,
		"# Instructions / 작성 가이드:",
	}
	for _, inst := range t.Instructions {
		lines = append(lines, "# "+inst)
	}
	lines = append(lines,
		"#",
		"# Delete these comment lines (starting with #) before uploading",
		"# 업로드 전에 # 으로 시작하는 이 주석 줄들을 삭제하세요",
		"#",
		strings.Join(t.Headers, ","),
	)

	example := make([]string, len(t.Example))
	for i, v := range t.Example {
		example[i] = escapeCSV(v)
	}
	lines = append(lines, strings.Join(example, ","))

	blank := strings.Repeat(",", len(t.Headers)-1)
	for i := 0; i < 5; i++ {
		lines = append(lines, blank)
	}

	return []byte("\uFEFF" + strings.Join(lines, "\n"))
}

func escapeCSV(v string) string {
	if strings.ContainsAny(v, ",\"\n") {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}

const spreadsheetHead = `<?xml version="1.0" encoding="UTF-8"?>
<?mso-application progid="Excel.Sheet"?>
<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet"
  xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet">
  <Styles>
    <Style ss:ID="Default" ss:Name="Normal">
      <Font ss:FontName="Arial" ss:Size="10"/>
    </Style>
    <Style ss:ID="Title">
      <Font ss:FontName="Arial" ss:Size="14" ss:Bold="1"/>
      <Interior ss:Color="#E8F4FC" ss:Pattern="Solid"/>
    </Style>
    <Style ss:ID="Header">
      <Font ss:FontName="Arial" ss:Size="10" ss:Bold="1"/>
      <Interior ss:Color="#4472C4" ss:Pattern="Solid"/>
      <Font ss:Color="#FFFFFF"/>
    </Style>
    <Style ss:ID="Example">
      <Interior ss:Color="#FFF2CC" ss:Pattern="Solid"/>
    </Style>
  </Styles>
  <Worksheet ss:Name="Template">
    <Table>
`

const spreadsheetTail = `    </Table>
  </Worksheet>
</Workbook>`

// SpreadsheetML renders an Excel 2003 XML workbook with a merged title, the
// instructions, the styled header and example rows and ten blank rows.
func (t ImportTemplate) SpreadsheetML() []byte {
	var b bytes.Buffer
	merge := len(t.Headers) - 1

	b.WriteString(spreadsheetHead)

	fmt.Fprintf(&b, `<Row ss:StyleID="Title"><Cell ss:MergeAcross="%d"><Data ss:Type="String">%s</Data></Cell></Row>`+"\n", merge, escapeXML(t.Name))
	fmt.Fprintf(&b, `<Row><Cell ss:MergeAcross="%d"><Data ss:Type="String">Instructions / 작성 가이드:</Data></Cell></Row>`+"\n", merge)
	for _, inst := range t.Instructions {
		fmt.Fprintf(&b, `<Row><Cell ss:MergeAcross="%d"><Data ss:Type="String">%s</Data></Cell></Row>`+"\n", merge, escapeXML(inst))
	}
	b.WriteString("<Row></Row>\n")

	b.WriteString(`<Row ss:StyleID="Header">`)
	for _, h := range t.Headers {
		fmt.Fprintf(&b, `<Cell><Data ss:Type="String">%s</Data></Cell>`, escapeXML(h))
	}
	b.WriteString("</Row>\n")

	b.WriteString(`<Row ss:StyleID="Example">`)
	for _, v := range t.Example {
		cellType := "String"
		if isNumeric(v) {
			cellType = "Number"
		}
		fmt.Fprintf(&b, `<Cell><Data ss:Type="%s">%s</Data></Cell>`, cellType, escapeXML(v))
	}
	b.WriteString("</Row>\n")

	for i := 0; i < 10; i++ {
		b.WriteString("<Row>")
		for range t.Headers {
			b.WriteString(`<Cell><Data ss:Type="String"></Data></Cell>`)
		}
		b.WriteString("</Row>\n")
	}

	b.WriteString(spreadsheetTail)
	return b.Bytes()
}

func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func isNumeric(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

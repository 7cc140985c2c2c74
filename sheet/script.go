// ABOUTME: Google Apps Script generation for the sheet webhook
// ABOUTME: Produces the doPost script operators paste into their spreadsheet
package sheet

import (
	"strings"
	"text/template"

	"github.com/harperreed/cardsnap/models"
)

// Column pairs a record key with its human-readable sheet header.
type Column struct {
	Header string
	Key    string
}

// Columns returns the sheet column layout in catalog order.
func Columns() []Column {
	cols := make([]Column, len(models.ContactFields))
	for i, f := range models.ContactFields {
		cols[i] = Column{Header: f.Label, Key: f.Key}
	}
	return cols
}

// The generated script holds a mutual-exclusion lock around the append so
// concurrent submissions cannot interleave rows, and rewrites the header
// row with readable names when the sheet is empty or still carries raw
// keys from an earlier setup.
var scriptTemplate = template.Must(template.New("script").Parse(`function doPost(e) {
  var lock = LockService.getScriptLock();
  lock.tryLock(10000); // Wait up to 10s for other processes to finish

  try {
    var sheet = SpreadsheetApp.getActiveSpreadsheet().getActiveSheet();

    // We expect JSON string in the post body
    var data = JSON.parse(e.postData.contents);

    // Configuration: Map nice Headers to internal Keys
    var columns = [
{{- range .Columns}}
      { header: "{{.Header}}", key: "{{.Key}}" },
{{- end}}
    ];

    var headerNames = columns.map(function(c) { return c.header; });

    // Smart Header Check:
    // If the sheet is empty OR the first header looks like a raw key (e.g. "{{.FirstKey}}"),
    // we overwrite row 1 with the nice Human Readable headers.

    var firstCell = "";
    if (sheet.getLastRow() > 0) {
      firstCell = sheet.getRange(1, 1).getValue();
    }

    if (sheet.getLastRow() === 0 || firstCell === "{{.FirstKey}}" || firstCell === "{{.FirstKeyLower}}") {
      if (sheet.getLastRow() > 0) {
        sheet.getRange(1, 1, 1, headerNames.length).setValues([headerNames]);
      } else {
        sheet.appendRow(headerNames);
      }
      sheet.getRange(1, 1, 1, headerNames.length)
           .setFontWeight("bold")
           .setBackground("#f3f4f6")
           .setBorder(true, true, true, true, true, true, "#e5e7eb", SpreadsheetApp.BorderStyle.SOLID);
      sheet.setFrozenRows(1);
    }

    // Map incoming data
    var row = columns.map(function(c) {
      return data[c.key] || "";
    });

    sheet.appendRow(row);

    return ContentService.createTextOutput(JSON.stringify({"result":"success"}))
      .setMimeType(ContentService.MimeType.JSON);

  } catch (e) {
    return ContentService.createTextOutput(JSON.stringify({"result":"error", "error": e.toString()}))
      .setMimeType(ContentService.MimeType.JSON);
  } finally {
    lock.releaseLock();
  }
}`))

// AppsScript renders the webhook script for the current field catalog.
func AppsScript() string {
	firstKey := models.ContactFields[0].Key

	var buf strings.Builder
	err := scriptTemplate.Execute(&buf, struct {
		Columns       []Column
		FirstKey      string
		FirstKeyLower string
	}{
		Columns:       Columns(),
		FirstKey:      firstKey,
		FirstKeyLower: strings.ToLower(firstKey),
	})
	if err != nil {
		// The template and its inputs are static; a failure here is a bug.
		panic(err)
	}
	return buf.String()
}

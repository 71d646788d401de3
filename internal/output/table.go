package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mobil-koeln/placepicker/internal/models"
)

// TableOptions configures the table output
type TableOptions struct {
	Colors    *Colors
	ShowTypes bool
	ShowIDs   bool
}

func (o TableOptions) colors() *Colors {
	if o.Colors == nil {
		return NewColors(ColorNever)
	}
	return o.Colors
}

// RenderEntries renders suggestion rows as a numbered list
func RenderEntries(w io.Writer, entries []models.ResultEntry, opts TableOptions) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No places found.")
		return
	}

	c := opts.colors()
	width := len(fmt.Sprint(len(entries)))

	for i, e := range entries {
		main := e.StructuredFormatting.MainText
		secondary := e.StructuredFormatting.SecondaryText
		if main == "" {
			main = models.Describe(e)
			secondary = ""
		}

		name := c.Name("%s", main)
		if e.IsPredefinedPlace || e.IsCurrentLocation {
			name = c.Predefined("%s", main)
		}

		line := fmt.Sprintf("%s %s", c.Index("%*d.", width, i+1), name)
		if secondary != "" {
			line += "  " + c.Muted("%s", secondary)
		}
		_, _ = fmt.Fprintln(w, line)

		indent := strings.Repeat(" ", width+2)
		if e.Geometry != nil {
			_, _ = fmt.Fprintf(w, "%s%s\n", indent, c.FormatCoord(e.Geometry.Location.Lat, e.Geometry.Location.Lng))
		}
		if opts.ShowIDs && e.PlaceID != "" {
			_, _ = fmt.Fprintf(w, "%s%s %s\n", indent, c.Muted("ID:"), c.PlaceID("%s", e.PlaceID))
		}
		if opts.ShowTypes && len(e.Types) > 0 {
			_, _ = fmt.Fprintf(w, "%s%s\n", indent, c.Types("%s", strings.Join(e.Types, ", ")))
		}
	}
}

// RenderDetail renders a resolved place
func RenderDetail(w io.Writer, d *models.PlaceDetail, opts TableOptions) {
	if d == nil {
		_, _ = fmt.Fprintln(w, "No place details found.")
		return
	}

	c := opts.colors()

	title := d.Name
	if title == "" {
		title = d.FormattedAddress
	}
	_, _ = fmt.Fprintln(w, c.Header("%s", title))
	if d.FormattedAddress != "" && d.FormattedAddress != title {
		_, _ = fmt.Fprintln(w, c.Address("%s", d.FormattedAddress))
	}
	_, _ = fmt.Fprintln(w)

	field := func(label, value string) {
		if value == "" {
			return
		}
		_, _ = fmt.Fprintf(w, "  %s %s\n", c.Muted("%-10s", label+":"), value)
	}

	loc := d.Geometry.Location
	field("Location", c.FormatCoord(loc.Lat, loc.Lng))
	if vp := d.Geometry.Viewport; vp != nil {
		field("Viewport", fmt.Sprintf("%s - %s",
			c.FormatCoord(vp.Southwest.Lat, vp.Southwest.Lng),
			c.FormatCoord(vp.Northeast.Lat, vp.Northeast.Lng)))
	}
	field("Place ID", c.PlaceID("%s", d.PlaceID))
	if len(d.Types) > 0 {
		field("Types", c.Types("%s", strings.Join(d.Types, ", ")))
	}
	if d.PlusCode != nil {
		field("Plus code", d.PlusCode.GlobalCode)
	}
	field("Vicinity", d.Vicinity)
	field("URL", d.URL)

	if len(d.AddressComponents) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, c.Header("Address:"))
		for _, ac := range d.AddressComponents {
			kind := ""
			if len(ac.Types) > 0 {
				kind = ac.Types[0]
			}
			_, _ = fmt.Fprintf(w, "  %s %s\n", c.Muted("%-28s", kind), ac.LongName)
		}
	}
}

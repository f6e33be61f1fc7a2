package globalconfig

import "encoding/xml"

// Switches is the debug switch list. In XML each switch is a <boolean>
// child of the <DebugSwitches> element. The element is written even for an
// empty list, so an empty list and a missing element decode differently.
type Switches []bool

const switchElement = "boolean"

func (s Switches) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	item := xml.StartElement{Name: xml.Name{Local: switchElement}}
	for _, on := range s {
		if err := e.EncodeElement(on, item); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// UnmarshalXML always leaves a non-nil list, empty when the element has no
// children.
func (s *Switches) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var list struct {
		Items []bool `xml:"boolean"`
	}
	if err := d.DecodeElement(&list, &start); err != nil {
		return err
	}
	if list.Items == nil {
		list.Items = []bool{}
	}
	*s = list.Items
	return nil
}

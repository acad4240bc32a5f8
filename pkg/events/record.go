package events

import (
	"github.com/mailru/easyjson/jwriter"
)

// MarshalEasyJSON writes the record in its fixed field order:
// timestamp, device, product, vendorId, productId, vk, scan, flags,
// eventType, keyName. Unknown device fields are written as null.
func (e KeyEvent) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"timestamp":`)
	w.Int64(e.Timestamp.UnixMilli())

	d := e.Device
	w.RawString(`,"device":`)
	if d != nil && d.Path != "" {
		w.String(d.Path)
	} else {
		w.RawString("null")
	}
	w.RawString(`,"product":`)
	if d != nil && d.Product != "" {
		w.String(d.Product)
	} else {
		w.RawString("null")
	}
	w.RawString(`,"vendorId":`)
	if d != nil && d.HasIDs {
		w.Uint16(d.VendorID)
	} else {
		w.RawString("null")
	}
	w.RawString(`,"productId":`)
	if d != nil && d.HasIDs {
		w.Uint16(d.ProductID)
	} else {
		w.RawString("null")
	}

	w.RawString(`,"vk":`)
	w.Uint16(uint16(e.VK))
	w.RawString(`,"scan":`)
	w.Uint16(uint16(e.Scan))
	w.RawString(`,"flags":`)
	w.String(e.Flags.String())
	w.RawString(`,"eventType":`)
	w.String(string(e.Direction))
	w.RawString(`,"keyName":`)
	w.String(e.KeyName)
	w.RawByte('}')
}

// MarshalJSON implements json.Marshaler through the easyjson writer.
func (e KeyEvent) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{NoEscapeHTML: true}
	e.MarshalEasyJSON(&w)
	return w.BuildBytes()
}

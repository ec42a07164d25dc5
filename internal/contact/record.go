package contact

import (
	"slices"
	"strings"
)

// Record holds one contact: a fixed name, an ordered list of phones and an
// optional birthday. Duplicate phones are allowed.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates an empty Record for name.
func NewRecord(name string) (*Record, error) {
	n, err := ParseName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the record's name.
func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []Phone {
	return slices.Clone(r.phones)
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone validates text and appends it to the phone list.
func (r *Record) AddPhone(text string) error {
	p, err := ParsePhone(text)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// EditPhone replaces the first phone equal to oldText with newText.
// newText is validated before the list is touched, so a bad value leaves the
// record unchanged. The replacement goes to the end of the list.
func (r *Record) EditPhone(oldText, newText string) error {
	i := r.indexOf(oldText)
	if i < 0 {
		return ErrPhoneNotFound
	}
	p, err := ParsePhone(newText)
	if err != nil {
		return err
	}
	r.phones = slices.Delete(r.phones, i, i+1)
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes the first phone equal to text.
func (r *Record) RemovePhone(text string) error {
	i := r.indexOf(text)
	if i < 0 {
		return ErrPhoneNotFound
	}
	r.phones = slices.Delete(r.phones, i, i+1)
	return nil
}

// FindPhone looks up an exact match. Absence is reported by ok == false.
func (r *Record) FindPhone(text string) (p Phone, ok bool) {
	i := r.indexOf(text)
	if i < 0 {
		return "", false
	}
	return r.phones[i], true
}

// SetBirthday validates text and replaces any existing birthday.
func (r *Record) SetBirthday(text string) error {
	b, err := ParseBirthday(text)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// JoinPhones renders the phone list separated by "; ".
func (r *Record) JoinPhones() string {
	parts := make([]string, len(r.phones))
	for i, p := range r.phones {
		parts[i] = p.String()
	}
	return strings.Join(parts, "; ")
}

// String renders the record on one line; the birthday clause is omitted when
// no birthday is set.
func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString("Contact name: ")
	sb.WriteString(r.name.String())
	sb.WriteString(", phones: ")
	sb.WriteString(r.JoinPhones())
	if r.birthday != nil {
		sb.WriteString(", birthday: ")
		sb.WriteString(r.birthday.String())
	}
	return sb.String()
}

func (r *Record) indexOf(text string) int {
	return slices.Index(r.phones, Phone(text))
}

// Package index provides the order-preserving member index used while
// scanning one source file top to bottom.
package index

// Ordered maps a class name to the member names declared under it,
// preserving insertion order for both keys and members. It is not a
// general-purpose container: the scanner appends members under the most
// recently inserted class and iterates in declaration order afterwards.
type Ordered struct {
	keys    []string
	members map[string][]string
}

func New() *Ordered {
	return &Ordered{members: make(map[string][]string)}
}

// Insert registers a new key with no members. Inserting an existing key
// moves it to the most-recent position without dropping its members.
func (o *Ordered) Insert(key string) {
	if _, ok := o.members[key]; ok {
		for i, k := range o.keys {
			if k == key {
				o.keys = append(o.keys[:i], o.keys[i+1:]...)
				break
			}
		}
	} else {
		o.members[key] = nil
	}

	o.keys = append(o.keys, key)
}

// Append adds a member under the given key, inserting the key if needed.
func (o *Ordered) Append(key, member string) {
	if _, ok := o.members[key]; !ok {
		o.Insert(key)
	}

	o.members[key] = append(o.members[key], member)
}

// Last returns the most recently inserted key and false when the index
// is empty.
func (o *Ordered) Last() (string, bool) {
	if len(o.keys) == 0 {
		return "", false
	}

	return o.keys[len(o.keys)-1], true
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not mutate it.
func (o *Ordered) Keys() []string {
	return o.keys
}

// Members returns the members appended under key, in insertion order.
func (o *Ordered) Members(key string) []string {
	return o.members[key]
}

// SetMembers replaces the member list for an existing key. Used when
// reordering members for alphabetical output.
func (o *Ordered) SetMembers(key string, members []string) {
	if _, ok := o.members[key]; ok {
		o.members[key] = members
	}
}

func (o *Ordered) Len() int {
	return len(o.keys)
}

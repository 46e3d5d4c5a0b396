package enact

// Registry maps enactment ids to their implementations. Hosts fill it
// at startup and construct enactables from it.
type Registry struct {
	enactments map[EnactmentID]Enactment
}

func (r *Registry) SetEnactment(id EnactmentID, e Enactment) {
	if r.enactments == nil {
		r.enactments = make(map[EnactmentID]Enactment)
	}

	r.enactments[id] = e
}

func (r *Registry) Enactment(id EnactmentID) (Enactment, error) {
	if r.enactments == nil {
		return nil, ErrEnactmentNotFound
	}

	e, ok := r.enactments[id]
	if !ok {
		return nil, ErrEnactmentNotFound
	}

	return e, nil
}

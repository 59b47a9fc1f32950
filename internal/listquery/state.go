package listquery

// State is one view's query state: search term, optional exact name filter,
// and a 1-based page. Changing either predicate resets the page to 1;
// changing only the page leaves predicates untouched.
type State struct {
	term   string
	filter string
	page   int
}

func NewState() State {
	return State{page: 1}
}

func (s *State) Term() string   { return s.term }
func (s *State) Filter() string { return s.filter }

func (s *State) Page() int {
	if s.page < 1 {
		return 1
	}
	return s.page
}

func (s *State) SetTerm(term string) {
	if s.term == term {
		return
	}
	s.term = term
	s.page = 1
}

func (s *State) SetFilter(filter string) {
	if s.filter == filter {
		return
	}
	s.filter = filter
	s.page = 1
}

// SetPage moves to page p, clamped to [1, totalPages].
func (s *State) SetPage(p, totalPages int) {
	if totalPages < 1 {
		totalPages = 1
	}
	if p < 1 {
		p = 1
	}
	if p > totalPages {
		p = totalPages
	}
	s.page = p
}

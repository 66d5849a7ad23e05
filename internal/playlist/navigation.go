package playlist

import "github.com/jscyril/wpl_player/api"

// After returns the track that follows track. A track that is no longer in
// the playlist is followed by the first track; the last track has no
// successor and yields nil.
func (p *Playlist) After(track *api.Track) *api.Track {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.tracks) == 0 {
		return nil
	}

	index := p.indexOf(track)
	if index < 0 {
		return p.tracks[0]
	}
	if index == len(p.tracks)-1 {
		return nil
	}
	return p.tracks[index+1]
}

// Before returns the track preceding track, or nil when track is first or
// no longer in the playlist.
func (p *Playlist) Before(track *api.Track) *api.Track {
	p.mu.RLock()
	defer p.mu.RUnlock()

	index := p.indexOf(track)
	if index <= 0 {
		return nil
	}
	return p.tracks[index-1]
}

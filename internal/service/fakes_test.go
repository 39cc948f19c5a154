package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"valomate/backend/internal/models"
	"valomate/backend/internal/repository"
	"valomate/backend/internal/resettoken"

	"gorm.io/gorm"
)

// In-memory repository fakes so the business rules run without a database.

type memUserRepo struct {
	mu    sync.Mutex
	seq   uint
	users map[uint]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uint]*models.User)}
}

func (r *memUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	r.seq++
	user.ID = r.seq
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) FindByID(id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) FindByLogin(login string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == login || u.Email == login {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) FindByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) UsernameTaken(username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type memVerificationRepo struct {
	mu     sync.Mutex
	seq    uint
	tokens map[uint]*models.EmailVerification
}

func newMemVerificationRepo() *memVerificationRepo {
	return &memVerificationRepo{tokens: make(map[uint]*models.EmailVerification)}
}

func (r *memVerificationRepo) Create(v *models.EmailVerification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.tokens {
		if existing.UserID == v.UserID || existing.Token == v.Token {
			return repository.ErrDuplicate
		}
	}
	r.seq++
	v.ID = r.seq
	copied := *v
	r.tokens[v.ID] = &copied
	return nil
}

func (r *memVerificationRepo) FindByToken(token string) (*models.EmailVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.tokens {
		if v.Token == token {
			copied := *v
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memVerificationRepo) FindByUser(userID uint) (*models.EmailVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.tokens {
		if v.UserID == userID {
			copied := *v
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memVerificationRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, id)
	return nil
}

func (r *memVerificationRepo) countByUser(userID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, v := range r.tokens {
		if v.UserID == userID {
			count++
		}
	}
	return count
}

type memTaxonomyRepo struct {
	mu        sync.Mutex
	seq       uint
	agents    []models.Agent
	platforms []models.Platform
	ranks     []models.Rank
	regions   []models.Region
}

func newMemTaxonomyRepo() *memTaxonomyRepo {
	return &memTaxonomyRepo{}
}

func (r *memTaxonomyRepo) nextID() uint {
	r.seq++
	return r.seq
}

func (r *memTaxonomyRepo) CreateAgent(agent *models.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.agents {
		if a.Name == agent.Name {
			return repository.ErrDuplicate
		}
	}
	agent.ID = r.nextID()
	r.agents = append(r.agents, *agent)
	return nil
}

func (r *memTaxonomyRepo) ListAgents() ([]models.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Agent(nil), r.agents...), nil
}

func (r *memTaxonomyRepo) FindAgentByName(name string) (*models.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.agents {
		if a.Name == name {
			copied := a
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memTaxonomyRepo) CreatePlatform(platform *models.Platform) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.platforms {
		if p.Name == platform.Name {
			return repository.ErrDuplicate
		}
	}
	platform.ID = r.nextID()
	r.platforms = append(r.platforms, *platform)
	return nil
}

func (r *memTaxonomyRepo) ListPlatforms() ([]models.Platform, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Platform(nil), r.platforms...), nil
}

func (r *memTaxonomyRepo) FindPlatformByName(name string) (*models.Platform, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.platforms {
		if p.Name == name {
			copied := p
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memTaxonomyRepo) CreateRank(rank *models.Rank) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.ranks {
		if existing.Name == rank.Name {
			return repository.ErrDuplicate
		}
	}
	rank.ID = r.nextID()
	r.ranks = append(r.ranks, *rank)
	return nil
}

func (r *memTaxonomyRepo) ListRanks() ([]models.Rank, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Rank(nil), r.ranks...), nil
}

func (r *memTaxonomyRepo) FindRankByName(name string) (*models.Rank, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.ranks {
		if existing.Name == name {
			copied := existing
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memTaxonomyRepo) CreateRegion(region *models.Region) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.regions {
		if existing.Code == region.Code {
			return repository.ErrDuplicate
		}
	}
	region.ID = r.nextID()
	r.regions = append(r.regions, *region)
	return nil
}

func (r *memTaxonomyRepo) ListRegions() ([]models.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Region(nil), r.regions...), nil
}

func (r *memTaxonomyRepo) FindRegionByCode(code string) (*models.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.regions {
		if existing.Code == code {
			copied := existing
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

// seedTaxonomy fills the fake with the full fixed taxonomy.
func seedTaxonomy(r *memTaxonomyRepo) {
	for _, name := range []string{"Jett", "Sage", "Omen", "Sova"} {
		category, _ := models.CategoryForAgent(name)
		_ = r.CreateAgent(&models.Agent{Name: name, Category: category})
	}
	for _, name := range models.PlatformNames {
		_ = r.CreatePlatform(&models.Platform{Name: name})
	}
	for _, name := range models.RankNames {
		_ = r.CreateRank(&models.Rank{Name: name})
	}
	for _, code := range models.RegionCodes {
		_ = r.CreateRegion(&models.Region{Code: code})
	}
}

type memProfileRepo struct {
	mu       sync.Mutex
	seq      uint
	profiles map[uint]*models.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[uint]*models.Profile)}
}

func (r *memProfileRepo) Create(profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.UserID == profile.UserID && p.AgentID == profile.AgentID && p.PlayStyle == profile.PlayStyle {
			return repository.ErrDuplicate
		}
	}
	r.seq++
	profile.ID = r.seq
	copied := *profile
	r.profiles[profile.ID] = &copied
	return nil
}

func (r *memProfileRepo) FindByUser(userID uint) ([]models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Profile
	for _, p := range r.profiles {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memProfileRepo) FirstByUser(userID uint) (*models.Profile, error) {
	profiles, _ := r.FindByUser(userID)
	if len(profiles) == 0 {
		return nil, repository.ErrNotFound
	}
	return &profiles[0], nil
}

func (r *memProfileRepo) Update(profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *profile
	r.profiles[profile.ID] = &copied
	return nil
}

func (r *memProfileRepo) UpdatePlatformForUser(userID, platformID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.UserID == userID {
			p.PlatformID = platformID
		}
	}
	return nil
}

func (r *memProfileRepo) ReplaceForUser(userID uint, profiles []*models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.profiles {
		if p.UserID == userID {
			delete(r.profiles, id)
		}
	}
	for _, p := range profiles {
		r.seq++
		p.ID = r.seq
		copied := *p
		r.profiles[p.ID] = &copied
	}
	return nil
}

func (r *memProfileRepo) DeleteByUser(userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.profiles {
		if p.UserID == userID {
			delete(r.profiles, id)
		}
	}
	return nil
}

type memChatRepo struct {
	mu       sync.Mutex
	chatSeq  uint
	msgSeq   uint
	members  map[uint]map[uint]bool
	messages map[uint][]models.Message
}

func newMemChatRepo() *memChatRepo {
	return &memChatRepo{
		members:  make(map[uint]map[uint]bool),
		messages: make(map[uint][]models.Message),
	}
}

func (r *memChatRepo) newChat() uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chatSeq++
	r.members[r.chatSeq] = make(map[uint]bool)
	return r.chatSeq
}

func (r *memChatRepo) AddMember(chatID, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.members[chatID] == nil {
		r.members[chatID] = make(map[uint]bool)
	}
	r.members[chatID][userID] = true
	return nil
}

func (r *memChatRepo) RemoveMember(chatID, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members[chatID], userID)
	return nil
}

func (r *memChatRepo) IsMember(chatID, userID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.members[chatID][userID], nil
}

func (r *memChatRepo) CreateMessage(msg *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgSeq++
	msg.ID = r.msgSeq
	r.messages[msg.ChatID] = append(r.messages[msg.ChatID], *msg)
	return nil
}

func (r *memChatRepo) ListMessages(chatID uint) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Message(nil), r.messages[chatID]...), nil
}

func (r *memChatRepo) Delete(chatID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, chatID)
	delete(r.messages, chatID)
	return nil
}

type memRoomRepo struct {
	mu       sync.Mutex
	seq      uint
	rooms    map[uint]*models.Room
	chats    *memChatRepo
	requests *memRequestRepo
}

func newMemRoomRepo(chats *memChatRepo, requests *memRequestRepo) *memRoomRepo {
	return &memRoomRepo{
		rooms:    make(map[uint]*models.Room),
		chats:    chats,
		requests: requests,
	}
}

func (r *memRoomRepo) Create(room *models.Room) error {
	chatID := r.chats.newChat()
	_ = r.chats.AddMember(chatID, room.LeaderID)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	room.ID = r.seq
	room.ChatID = chatID
	room.Members = []models.User{{Model: gorm.Model{ID: room.LeaderID}}}
	copied := *room
	copied.Members = append([]models.User(nil), room.Members...)
	r.rooms[room.ID] = &copied
	return nil
}

func (r *memRoomRepo) FindByID(id uint) (*models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *room
	copied.Members = append([]models.User(nil), room.Members...)
	return &copied, nil
}

func (r *memRoomRepo) ListOpen(kind models.RoomKind, page, limit int) ([]models.Room, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var open []models.Room
	for _, room := range r.rooms {
		if kind != "" && room.Kind != kind {
			continue
		}
		if !room.IsFull() {
			open = append(open, *room)
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i].ID < open[j].ID })

	total := int64(len(open))
	start := (page - 1) * limit
	if start >= len(open) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(open) {
		end = len(open)
	}
	return open[start:end], total, nil
}

func (r *memRoomRepo) Admit(roomID, chatID, requestID, senderID uint, ready bool) error {
	if err := r.requests.UpdateStatus(requestID, models.RequestAccepted); err != nil {
		return err
	}

	r.mu.Lock()
	room, ok := r.rooms[roomID]
	if !ok {
		r.mu.Unlock()
		return repository.ErrNotFound
	}
	room.Members = append(room.Members, models.User{Model: gorm.Model{ID: senderID}})
	if ready {
		room.Ready = true
	}
	r.mu.Unlock()

	if err := r.chats.AddMember(chatID, senderID); err != nil {
		return err
	}
	return r.requests.DeletePendingBySender(senderID, requestID)
}

func (r *memRoomRepo) RemoveMember(roomID, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return repository.ErrNotFound
	}
	var kept []models.User
	for _, member := range room.Members {
		if member.ID != userID {
			kept = append(kept, member)
		}
	}
	room.Members = kept
	return nil
}

func (r *memRoomRepo) SetReady(roomID uint, ready bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if room, ok := r.rooms[roomID]; ok {
		room.Ready = ready
	}
	return nil
}

func (r *memRoomRepo) SetLeader(roomID, leaderID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if room, ok := r.rooms[roomID]; ok {
		room.LeaderID = leaderID
	}
	return nil
}

func (r *memRoomRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, id)
	return nil
}

// OldestMember follows the Members slice, which mirrors join order.
func (r *memRoomRepo) OldestMember(roomID, exceptID uint) (uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	for _, member := range room.Members {
		if member.ID != exceptID {
			return member.ID, nil
		}
	}
	return 0, repository.ErrNotFound
}

func (r *memRoomRepo) UserInAnyRoom(userID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, room := range r.rooms {
		if room.LeaderID == userID {
			return true, nil
		}
		for _, member := range room.Members {
			if member.ID == userID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *memRoomRepo) FindByMember(userID uint) (*models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, room := range r.rooms {
		for _, member := range room.Members {
			if member.ID == userID {
				copied := *room
				copied.Members = append([]models.User(nil), room.Members...)
				return &copied, nil
			}
		}
	}
	return nil, repository.ErrNotFound
}

type memRequestRepo struct {
	mu       sync.Mutex
	seq      uint
	requests map[uint]*models.JoinRequest
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{requests: make(map[uint]*models.JoinRequest)}
}

func (r *memRequestRepo) Create(req *models.JoinRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.requests {
		if existing.SenderID == req.SenderID && existing.RoomID == req.RoomID {
			return repository.ErrDuplicate
		}
	}
	r.seq++
	req.ID = r.seq
	copied := *req
	r.requests[req.ID] = &copied
	return nil
}

func (r *memRequestRepo) FindByID(id uint) (*models.JoinRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *req
	copied.Sender = models.User{Model: gorm.Model{ID: req.SenderID}}
	return &copied, nil
}

func (r *memRequestRepo) ListByRoom(roomID uint) ([]models.JoinRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.JoinRequest
	for _, req := range r.requests {
		if req.RoomID == roomID {
			out = append(out, *req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRequestRepo) UpdateStatus(id uint, status models.JoinRequestStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return repository.ErrNotFound
	}
	req.Status = status
	return nil
}

func (r *memRequestRepo) MarkSeen(roomID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.RoomID == roomID {
			req.IsSeen = true
		}
	}
	return nil
}

func (r *memRequestRepo) DeletePendingBySender(senderID, exceptID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, req := range r.requests {
		if req.SenderID == senderID && req.Status == models.RequestPending && id != exceptID {
			delete(r.requests, id)
		}
	}
	return nil
}

func (r *memRequestRepo) DeleteByUser(userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, req := range r.requests {
		if req.SenderID == userID {
			delete(r.requests, id)
		}
	}
	return nil
}

// fakeClock pins time for the expiry rules.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// sentMail records one delivery through the recordMailer.
type sentMail struct {
	To      string
	Subject string
	Body    string
}

type recordMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *recordMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

// memResetStore replaces Redis in tests.
type memResetStore struct {
	mu     sync.Mutex
	tokens map[uint]string
}

func newMemResetStore() *memResetStore {
	return &memResetStore{tokens: make(map[uint]string)}
}

func (s *memResetStore) Issue(_ context.Context, userID uint, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[userID] = token
	return nil
}

func (s *memResetStore) Consume(_ context.Context, userID uint, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tokens[userID] != token || token == "" {
		return resettoken.ErrInvalidToken
	}
	delete(s.tokens, userID)
	return nil
}

// stubGate answers the complete-profile check with a fixed map.
type stubGate struct {
	complete map[uint]bool
}

func (g stubGate) HasCompleteProfile(userID uint) (bool, error) {
	return g.complete[userID], nil
}

// openGate treats every user as matchmakable.
type openGate struct{}

func (openGate) HasCompleteProfile(uint) (bool, error) { return true, nil }

// recordPublisher captures room events.
type recordPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordPublisher) Publish(_ uint, eventType string, _ interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
}

func (p *recordPublisher) has(eventType string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.events {
		if e == eventType {
			return true
		}
	}
	return false
}

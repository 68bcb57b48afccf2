package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDSN(t *testing.T) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
}

func openTestDB(t *testing.T) Database {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(testDSN(t)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db)
}

func newProject(slug string) *models.Project {
	return &models.Project{
		Name:        "Project " + slug,
		Description: "description",
		GitLink:     "https://github.com/me/" + slug,
		Slug:        slug,
		BuiltAt:     "2024-01-01",
	}
}

func createTech(t *testing.T, d Database, name string) models.TechStack {
	t.Helper()
	tech := models.TechStack{Name: name}
	if err := d.TechStackRepo().Create(context.Background(), &tech); err != nil {
		t.Fatalf("create tech %s: %v", name, err)
	}
	return tech
}

func sortedTagNames(p models.Project) []string {
	names := p.TagNames()
	sort.Strings(names)
	return names
}

func countRows(t *testing.T, d Database, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := d.GetDB().Model(model).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	return n
}

func TestTagFindOrCreate(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	first, err := d.TagRepo().FindOrCreate(ctx, "go")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := d.TagRepo().FindOrCreate(ctx, " go ")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected the same tag, got %s and %s", first.ID, second.ID)
	}
	if n := countRows(t, d, &models.Tag{}); n != 1 {
		t.Errorf("tag rows = %d, want 1", n)
	}
}

func TestTagFindOrCreateConcurrent(t *testing.T) {
	d := openTestDB(t)
	const workers = 8

	ids := make([]uuid.UUID, workers)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			tag, err := d.TagRepo().FindOrCreate(context.Background(), "go")
			ids[i] = tag.ID
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("find or create: %v", err)
	}

	if n := countRows(t, d, &models.Tag{}); n != 1 {
		t.Errorf("tag rows = %d, want 1", n)
	}
	for i, id := range ids {
		if id == uuid.Nil || id != ids[0] {
			t.Errorf("worker %d got tag %s, want %s", i, id, ids[0])
		}
	}
}

func TestTagFindAllOrdersByName(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	for _, name := range []string{"web", "api", "go"} {
		if _, err := d.TagRepo().FindOrCreate(ctx, name); err != nil {
			t.Fatal(err)
		}
	}

	tags, err := d.TagRepo().FindAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, tag := range tags {
		got = append(got, tag.Name)
	}
	if strings.Join(got, ",") != "api,go,web" {
		t.Errorf("order = %v", got)
	}
}

func TestProjectCreateLinksTagsAndTechs(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	goTech := createTech(t, d, "Go")

	if _, err := d.TagRepo().FindOrCreate(ctx, "backend"); err != nil {
		t.Fatal(err)
	}

	project, err := d.ProjectRepo().Create(ctx, newProject("api"), []string{"backend", "cli", "cli", ""}, []string{goTech.ID.String()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if got := sortedTagNames(project); strings.Join(got, ",") != "backend,cli" {
		t.Errorf("tags = %v", got)
	}
	if len(project.Techs) != 1 || project.Techs[0].TechStack == nil || project.Techs[0].TechStack.Name != "Go" {
		t.Errorf("techs = %+v", project.Techs)
	}
	if n := countRows(t, d, &models.Tag{}); n != 2 {
		t.Errorf("existing tag should be reused, tag rows = %d", n)
	}
}

func TestProjectCreateUnknownTechRollsBack(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	missing := uuid.NewString()

	_, err := d.ProjectRepo().Create(ctx, newProject("ghost"), []string{"fresh-tag"}, []string{missing})
	if !errs.IsBadRequest(err) {
		t.Fatalf("expected bad request, got %v", err)
	}
	if want := "Tech stack with id " + missing + " not found"; err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}

	for _, model := range []interface{}{&models.Project{}, &models.Tag{}, &models.ProjectTag{}, &models.ProjectTechStack{}} {
		if n := countRows(t, d, model); n != 0 {
			t.Errorf("%T rows = %d after rollback", model, n)
		}
	}
}

func TestProjectUpdateReconcilesAssociations(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	goTech := createTech(t, d, "Go")
	pgTech := createTech(t, d, "Postgres")

	created, err := d.ProjectRepo().Create(ctx, newProject("site"), []string{"a", "b"}, []string{goTech.ID.String()})
	if err != nil {
		t.Fatal(err)
	}
	var keptTagRow uuid.UUID
	for _, pt := range created.Tags {
		if pt.Tag.Name == "b" {
			keptTagRow = pt.ID
		}
	}

	changes := newProject("site-v2")
	changes.Name = "Renamed"
	techs := []string{pgTech.ID.String()}
	tags := []string{"b", "c"}

	var updated models.Project
	for i := 0; i < 2; i++ {
		slug := "site"
		if i > 0 {
			slug = "site-v2"
		}
		updated, err = d.ProjectRepo().Update(ctx, slug, changes, tags, techs)
		if err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}

	if updated.Name != "Renamed" || updated.Slug != "site-v2" {
		t.Errorf("fields not updated: %+v", updated)
	}
	if got := sortedTagNames(updated); strings.Join(got, ",") != "b,c" {
		t.Errorf("tags = %v", got)
	}
	if ids := updated.TechIDs(); len(ids) != 1 || ids[0] != pgTech.ID {
		t.Errorf("techs = %v", ids)
	}
	if n := countRows(t, d, &models.ProjectTag{}); n != 2 {
		t.Errorf("project tag rows = %d, want 2", n)
	}
	if n := countRows(t, d, &models.ProjectTechStack{}); n != 1 {
		t.Errorf("project tech rows = %d, want 1", n)
	}

	for _, pt := range updated.Tags {
		if pt.Tag.Name == "b" && pt.ID != keptTagRow {
			t.Error("join row for a kept tag should be left untouched")
		}
	}
}

func TestReconcileJoinsLostRace(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	project, err := d.ProjectRepo().Create(ctx, newProject("race"), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	tag, err := d.TagRepo().FindOrCreate(ctx, "go")
	if err != nil {
		t.Fatal(err)
	}

	db := d.GetDB()
	err = reconcileJoins(db, "project_id", project.ID, []uuid.UUID{tag.ID},
		func(pt models.ProjectTag) uuid.UUID { return pt.ID },
		func(pt models.ProjectTag) uuid.UUID { return pt.TagID },
		func(tagID uuid.UUID) models.ProjectTag {
			// another request links the same tag between our read and our insert
			if err := db.Create(&models.ProjectTag{ProjectID: project.ID, TagID: tagID}).Error; err != nil {
				t.Fatalf("concurrent link: %v", err)
			}
			return models.ProjectTag{ProjectID: project.ID, TagID: tagID}
		},
	)

	if !errs.IsConcurrentUpdateError(err) {
		t.Fatalf("expected a concurrent update error, got %v", err)
	}
	if errs.StatusCode(err) != 409 || err.Error() != "Project was modified concurrently, please retry" {
		t.Errorf("unexpected error %d %q", errs.StatusCode(err), err.Error())
	}
	if n := countRows(t, d, &models.ProjectTag{}); n != 1 {
		t.Errorf("join rows = %d, want 1", n)
	}
}

func TestProjectUpdateMissingSlug(t *testing.T) {
	d := openTestDB(t)
	_, err := d.ProjectRepo().Update(context.Background(), "nope", newProject("nope"), nil, nil)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestProjectDuplicateSlug(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	if _, err := d.ProjectRepo().Create(ctx, newProject("dup"), nil, nil); err != nil {
		t.Fatal(err)
	}
	_, err := d.ProjectRepo().Create(ctx, newProject("dup"), nil, nil)
	if got := errs.NewDatabaseError("create", "project", err); got.Message() != "Project already exists" {
		t.Errorf("duplicate slug mapped to %q (%v)", got.Message(), err)
	}
}

func TestProjectDeleteBySlug(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	goTech := createTech(t, d, "Go")
	if _, err := d.ProjectRepo().Create(ctx, newProject("gone"), []string{"x"}, []string{goTech.ID.String()}); err != nil {
		t.Fatal(err)
	}

	if err := d.ProjectRepo().DeleteBySlug(ctx, "gone"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := d.ProjectRepo().FindBySlug(ctx, "gone"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("project still present: %v", err)
	}
	if n := countRows(t, d, &models.ProjectTag{}) + countRows(t, d, &models.ProjectTechStack{}); n != 0 {
		t.Errorf("join rows left behind: %d", n)
	}
	if n := countRows(t, d, &models.Tag{}); n != 1 {
		t.Error("tags must survive project deletion")
	}
	if err := d.ProjectRepo().DeleteBySlug(ctx, "gone"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("second delete = %v, want ErrRecordNotFound", err)
	}
}

func TestMessagesNewestFirstAndSetRead(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	repo := d.MessageRepo()

	base := time.Now().Add(-time.Hour)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		m := models.Message{
			Name:      fmt.Sprintf("m%d", i),
			Email:     "v@x.dev",
			Message:   "hi",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, &m); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, m.ID)
	}

	list, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 || list[0].ID != ids[2] || list[2].ID != ids[0] {
		t.Errorf("unexpected order: %v", list)
	}
	for _, m := range list {
		if m.Read {
			t.Error("new messages must be unread")
		}
	}

	read, err := repo.SetRead(ctx, ids[1], true)
	if err != nil || !read.Read {
		t.Fatalf("set read: %+v %v", read, err)
	}
	if n, _ := repo.CountUnread(ctx); n != 2 {
		t.Errorf("unread = %d, want 2", n)
	}
	if _, err := repo.SetRead(ctx, uuid.New(), true); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("unknown id = %v", err)
	}
}

func TestTechStackDeleteUnlinksProjects(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	goTech := createTech(t, d, "Go")
	if _, err := d.ProjectRepo().Create(ctx, newProject("p"), nil, []string{goTech.ID.String()}); err != nil {
		t.Fatal(err)
	}

	if err := d.TechStackRepo().Delete(ctx, goTech.ID); err != nil {
		t.Fatal(err)
	}
	if n := countRows(t, d, &models.ProjectTechStack{}); n != 0 {
		t.Errorf("dangling project tech rows: %d", n)
	}
	if err := d.TechStackRepo().Delete(ctx, goTech.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("second delete = %v", err)
	}
}

func TestSkillUpdate(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	skill := models.Skill{Name: "Writing"}
	if err := d.SkillRepo().Create(ctx, &skill); err != nil {
		t.Fatal(err)
	}
	if skill.Progress != models.ProgressBeginner {
		t.Errorf("default progress = %q", skill.Progress)
	}

	updated, err := d.SkillRepo().Update(ctx, skill.ID, &models.Skill{Name: "Writing", Progress: models.ProgressAdvanced})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Progress != models.ProgressAdvanced {
		t.Errorf("progress = %q", updated.Progress)
	}
}

func TestBlogCategoriesAndPublishedFilter(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	news := models.Category{Name: "news"}
	if err := d.CategoryRepo().Create(ctx, &news); err != nil {
		t.Fatal(err)
	}

	draft := &models.Blog{Title: "Draft", Content: "...", Slug: "draft"}
	if _, err := d.BlogRepo().Create(ctx, draft, []string{news.ID.String()}); err != nil {
		t.Fatal(err)
	}
	public := &models.Blog{Title: "Hello", Content: "...", Slug: "hello", Published: true}
	created, err := d.BlogRepo().Create(ctx, public, []string{news.ID.String(), news.ID.String()})
	if err != nil {
		t.Fatal(err)
	}
	if len(created.Categories) != 1 {
		t.Errorf("categories = %d, want 1", len(created.Categories))
	}

	published, err := d.BlogRepo().FindAll(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(published) != 1 || published[0].Slug != "hello" {
		t.Errorf("published = %+v", published)
	}
	if _, err := d.BlogRepo().FindBySlug(ctx, "draft", true); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("draft visible to public lookup: %v", err)
	}

	updated, err := d.BlogRepo().Update(ctx, "draft", &models.Blog{Title: "Draft", Content: "done", Slug: "draft", Published: true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !updated.Published || len(updated.Categories) != 0 {
		t.Errorf("update = %+v", updated)
	}

	if err := d.CategoryRepo().Delete(ctx, news.ID); err != nil {
		t.Fatal(err)
	}
	if n := countRows(t, d, &models.BlogCategory{}); n != 0 {
		t.Errorf("blog category rows = %d", n)
	}
}

func TestStats(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	createTech(t, d, "Go")
	if _, err := d.ProjectRepo().Create(ctx, newProject("p"), []string{"a", "b"}, nil); err != nil {
		t.Fatal(err)
	}
	m := models.Message{Name: "v", Email: "v@x.dev", Message: "hi"}
	if err := d.MessageRepo().Create(ctx, &m); err != nil {
		t.Fatal(err)
	}

	s, err := d.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := Stats{Projects: 1, TechStacks: 1, Tags: 2, Messages: 1, UnreadMessages: 1}
	if s != want {
		t.Errorf("stats = %+v, want %+v", s, want)
	}
}

func TestSeedAdmin(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	created, err := d.SeedAdmin(ctx, "Owner", "owner@site.dev", "hash")
	if err != nil || !created {
		t.Fatalf("first seed: created=%v err=%v", created, err)
	}
	created, err = d.SeedAdmin(ctx, "Owner", "owner@site.dev", "hash")
	if err != nil || created {
		t.Fatalf("second seed: created=%v err=%v", created, err)
	}

	user := models.User{Name: "Later", Email: "later@site.dev", Password: "hash"}
	if err := d.UserRepo().Create(ctx, &user); err != nil {
		t.Fatal(err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("default role = %q", user.Role)
	}
	if _, err := d.SeedAdmin(ctx, "Later", "later@site.dev", "hash"); err != nil {
		t.Fatal(err)
	}
	promoted, err := d.UserRepo().FindByEmail(ctx, "later@site.dev")
	if err != nil || !promoted.IsAdmin() {
		t.Errorf("user not promoted: %+v %v", promoted, err)
	}
}

func TestUseReplicas(t *testing.T) {
	d := openTestDB(t)
	if err := UseReplicas(d.GetDB()); err != nil {
		t.Fatalf("no replicas: %v", err)
	}
	if err := UseReplicas(d.GetDB(), sqlite.Open(testDSN(t))); err != nil {
		t.Fatalf("register replica: %v", err)
	}

	ctx := context.Background()
	createTech(t, d, "Go")
	techs, err := d.TechStackRepo().FindAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(techs) != 1 {
		t.Errorf("replica read = %d rows, want 1", len(techs))
	}
	if err := d.Ping(ctx); err != nil {
		t.Errorf("ping: %v", err)
	}
}

// Copyright (c) 2025-2026 TravelEdu
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/traveledu/tcms-go/internal/model"
)

// SeedDemo creates a handful of published sample records so a fresh install
// has something to show. It is a no-op when any program already exists.
func (s *Service) SeedDemo(ctx context.Context, authorID int64) error {
	count, err := s.queries.CountPrograms(ctx)
	if err != nil {
		return fmt.Errorf("counting programs: %w", err)
	}
	if count > 0 {
		slog.Info("content exists, skipping demo seed")
		return nil
	}

	programs := []ProgramInput{
		{
			Type:    model.ProgramTypeStudyTour,
			Title:   "故宫深度研学营",
			Summary: "五天四夜走进紫禁城，跟随故宫研究员学习文物修复与宫廷建筑。",
			Body:    "## 行程亮点\n\n- 故宫博物院专家导览\n- 文物修复工作坊\n- 中轴线建筑测绘实践",
			Status:  model.StatusPublished,
		},
		{
			Type:    model.ProgramTypeSummerCamp,
			Title:   "新加坡科技夏令营",
			Summary: "两周沉浸式编程与机器人课程，走访南洋理工大学实验室。",
			Body:    "## 课程安排\n\n- Python 入门到项目实战\n- 机器人搭建与竞赛\n- 大学实验室参访",
			Status:  model.StatusPublished,
		},
	}
	for _, in := range programs {
		if _, err := s.CreateProgram(ctx, authorID, in); err != nil {
			return fmt.Errorf("seeding demo program %q: %w", in.Title, err)
		}
	}

	post := PostInput{
		Title:   "2026 年暑期项目报名开启",
		Excerpt: "今年暑期的研学营与夏令营已开放报名，名额有限。",
		Body:    "今年我们带来故宫研学营与新加坡科技夏令营两条线路。**早鸟优惠**截止至五月底。",
		Status:  model.StatusPublished,
	}
	if _, err := s.CreatePost(ctx, authorID, post); err != nil {
		return fmt.Errorf("seeding demo post: %w", err)
	}

	testimonial := TestimonialInput{
		AuthorName:  "李雯",
		AuthorRole:  "学生家长",
		Quote:       "孩子回来后对历史的兴趣完全不一样了，每天都在讲故宫的故事。",
		ProgramType: model.ProgramTypeStudyTour,
		Status:      model.StatusPublished,
	}
	if _, err := s.CreateTestimonial(ctx, testimonial); err != nil {
		return fmt.Errorf("seeding demo testimonial: %w", err)
	}

	slog.Info("seeded demo content",
		"programs", len(programs),
		"posts", 1,
		"testimonials", 1,
	)
	return nil
}

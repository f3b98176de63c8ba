// 题库统计脚本
//
// 校验内嵌题库并按章节打印题目与闪卡数量，修改 bank.yaml 后手动运行。
//
// 用法: go run scripts/bank_report.go

package main

import (
	"fmt"
	"linuxplus_backend/internal/content"
	"log"
	"os"
	"text/tabwriter"
)

func main() {
	bank, err := content.Load()
	if err != nil {
		log.Fatalf("题库校验失败: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CHAPTER\tTITLE\tWEIGHT\tQUESTIONS\tFLASHCARDS")
	for _, ch := range bank.Chapters() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n",
			ch.ID, ch.Title, ch.Weight, ch.Questions, len(bank.ChapterFlashcards(ch.ID)))
	}
	w.Flush()

	log.Printf("共 %d 道题，%d 张闪卡，%d 周学习计划",
		bank.QuestionCount(), len(bank.Flashcards()), len(bank.StudyPlan()))
}
